package generator

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/brianvoe/gofakeit/v6"

	"retailfaker/apperrors"
)

// Config общие настройки генераторов
type Config struct {
	// Workers размер пула воркеров; 0 означает число процессоров
	Workers int
	// Seed база для детерминированной генерации; 0 — случайная
	// Каждый воркер получает собственный faker с seed = Seed + индекс записи,
	// поэтому воспроизводимость гарантируется по индексу, а не по порядку вывода
	Seed int64
}

// workers возвращает действующий размер пула
func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// fakerFor возвращает faker для записи с данным индексом
func (c Config) fakerFor(index int) *gofakeit.Faker {
	if c.Seed == 0 {
		return gofakeit.New(0)
	}
	return gofakeit.New(c.Seed + int64(index))
}

// runPool параллельно выполняет count независимых задач генерации
// Задачи не разделяют изменяемое состояние: каждая владеет своей записью,
// общий контекст только читается. Результаты собираются в порядке
// завершения, порядок относительно индексов не гарантируется
// Первая ошибка любой задачи прерывает весь батч
func runPool[T any](ctx context.Context, config Config, count int, task func(index int, f *gofakeit.Faker) (T, error)) ([]T, error) {
	if count <= 0 {
		return []T{}, nil
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		results  = make([]T, 0, count)
		firstErr error
	)
	semaphore := make(chan struct{}, config.workers())

	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	for i := 0; i < count; i++ {
		// Проверяем контекст и первую ошибку перед каждой итерацией
		select {
		case <-ctx.Done():
			fail(ctx.Err())
		default:
		}

		mu.Lock()
		stop := firstErr != nil
		mu.Unlock()
		if stop {
			break
		}

		wg.Add(1)
		semaphore <- struct{}{} // Занимаем слот

		go func(index int) {
			defer func() {
				// Обработка паники в горутине для предотвращения краша всего процесса
				if rec := recover(); rec != nil {
					fail(apperrors.NewInternalError(
						fmt.Sprintf("panic generating record %d", index),
						fmt.Errorf("%v", rec)))
				}
				wg.Done()
				<-semaphore // Освобождаем слот
			}()

			record, err := task(index, config.fakerFor(index))
			if err != nil {
				fail(fmt.Errorf("record %d: %w", index, err))
				return
			}

			mu.Lock()
			results = append(results, record)
			mu.Unlock()
		}(i)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// round2 округляет денежное значение до двух знаков
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

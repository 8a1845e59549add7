package holiday

import "context"

type HolidayService interface {
	Create(ctx context.Context, req CreateHolidayRequest) (Holiday, error)
	Update(ctx context.Context, req UpdateHolidayRequest) (Holiday, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (Holiday, error)
	List(ctx context.Context, year *int) ([]Holiday, error)
	Years(ctx context.Context) ([]int, error)
}

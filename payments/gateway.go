package payments

import "context"

// Order — созданный на шлюзе платёжный ордер. Его ID запоминается в записи
// пожертвования; подтверждение оплаты приходит out-of-band.
type Order struct {
	OrderID string
	Receipt string
}

// Gateway — платёжный коллаборатор. Леджер трактует его как чёрный ящик:
// создание ордера при записи пожертвования, подтверждение приходит вебхуком.
type Gateway interface {
	CreateOrder(ctx context.Context, amount float64, currency string, notes map[string]string) (*Order, error)
}

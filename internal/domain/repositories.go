package domain

import "context"

type InventoryRepository interface {
	Load(ctx context.Context) (Inventory, error)
	Save(ctx context.Context, inventory Inventory) error
}

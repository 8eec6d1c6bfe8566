package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPlaced    = "placed"
	StatusCancelled = "cancelled"
)

type Order struct {
	ID            string          `gorm:"type:char(36);primaryKey" json:"id"`
	ClientID      string          `gorm:"type:char(36);not null;index:ix_orders_client_id" json:"-"`
	Status        string          `gorm:"type:varchar(32);not null" json:"status"`
	CustomerName  string          `gorm:"type:varchar(128);not null" json:"customer_name"`
	CustomerEmail string          `gorm:"type:varchar(255);not null;index:ix_orders_email" json:"customer_email"`
	Phone         string          `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Address       string          `gorm:"type:varchar(512);not null" json:"address"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	CreatedAt     time.Time       `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"type:datetime(3);not null" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID        string          `gorm:"type:char(36);primaryKey" json:"-"`
	OrderID   string          `gorm:"type:char(36);not null;index:ix_order_items_order_id" json:"-"`
	ProductID string          `gorm:"type:varchar(64);not null" json:"product_id"`
	Brand     string          `gorm:"type:varchar(128)" json:"brand"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Size      string          `gorm:"type:varchar(64);not null" json:"size"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Image     string          `gorm:"type:varchar(512)" json:"image,omitempty"`
	CreatedAt time.Time       `gorm:"type:datetime(3);not null" json:"-"`
}

func (OrderItem) TableName() string { return "order_items" }

// LineTotal is unit price times quantity.
func (it OrderItem) LineTotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Models lists everything AutoMigrate should create.
func Models() []any { return []any{&Order{}, &OrderItem{}} }

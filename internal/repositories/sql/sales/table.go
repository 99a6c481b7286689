package sales

import "time"

// Source table names of the historical sales warehouse.
const (
	tableOrderDetail = "OrderDetail"
	tableOrderHeader = "OrderHeader"
	tableCustomer    = "Customer"
	tablePerson      = "Person"
	tableProduct     = "Product"
	tableTerritory   = "Territory"
)

// OrderLine is one joined order-line row as selected from the warehouse.
// ProductLine, Class and Style are nullable in the product table.
type OrderLine struct {
	PersonType        string    `gorm:"column:person_type"`
	OrderQty          int       `gorm:"column:order_qty"`
	Name              string    `gorm:"column:name"`
	ProductLine       *string   `gorm:"column:product_line"`
	Class             *string   `gorm:"column:class"`
	Style             *string   `gorm:"column:style"`
	NameTerritory     string    `gorm:"column:name_territory"`
	CountryRegionCode string    `gorm:"column:country_region_code"`
	TerritoryGroup    string    `gorm:"column:territory_group"`
	TotalDue          float64   `gorm:"column:total_due"`
	OrderDate         time.Time `gorm:"column:order_date"`
}

package sales

import (
	"errors"

	"gorm.io/gorm"

	"github.com/salesmlstack/revenue-predictor/pkg/infra"
)

// Repository reads the joined historical order lines the trainer fits on.
type Repository interface {
	GetOrderLines() ([]OrderLine, error)
}

// Sales implements Repository over the warehouse MySQL schema.
type Sales struct {
	db *gorm.DB
}

// NewRepository creates a sales repository on top of the SQL connection.
func NewRepository(connection *infra.SQLConnection) (Repository, error) {
	if connection == nil {
		return nil, errors.New("connection cannot be nil")
	}
	db, err := connection.GetConn()
	if err != nil {
		return nil, err
	}
	return &Sales{db: db}, nil
}

// GetOrderLines joins the six source tables into one record per order line,
// mirroring the layout the pipeline was designed against: order detail rows
// left-joined with their header, customer, person, product and territory.
func (s *Sales) GetOrderLines() ([]OrderLine, error) {
	var lines []OrderLine
	result := s.db.
		Table(tableOrderDetail+" AS od").
		Select(
			"p.PersonType AS person_type, " +
				"od.OrderQty AS order_qty, " +
				"pr.Name AS name, " +
				"pr.ProductLine AS product_line, " +
				"pr.Class AS class, " +
				"pr.Style AS style, " +
				"t.Name AS name_territory, " +
				"t.CountryRegionCode AS country_region_code, " +
				"t.`Group` AS territory_group, " +
				"oh.TotalDue AS total_due, " +
				"oh.OrderDate AS order_date").
		Joins("LEFT JOIN " + tableOrderHeader + " AS oh ON oh.SalesOrderID = od.SalesOrderID").
		Joins("LEFT JOIN " + tableCustomer + " AS c ON c.CustomerID = oh.CustomerID").
		Joins("LEFT JOIN " + tablePerson + " AS p ON p.BusinessEntityID = c.PersonID").
		Joins("LEFT JOIN " + tableProduct + " AS pr ON pr.ProductID = od.ProductID").
		Joins("LEFT JOIN " + tableTerritory + " AS t ON t.TerritoryID = oh.TerritoryID").
		Scan(&lines)
	return lines, result.Error
}

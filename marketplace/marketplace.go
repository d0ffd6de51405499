// Package marketplace implements the personalized health marketplace
// contract: sellers list products, buyers place orders against stock.
package marketplace

import (
	"errors"
	"strconv"

	"github.com/vitalchain/healthcc/core"
	"github.com/vitalchain/healthcc/core/records"
	"github.com/vitalchain/healthcc/core/sequence"
)

// record type prefixes for products, orders and their id sequences
const (
	productRecordType = "product"
	orderRecordType   = "order"
)

// StatusPlaced is the only order status the contract issues. Further
// transitions are not part of the contract surface.
const StatusPlaced = "placed"

// Product is a marketplace listing.
type Product struct {
	Seller      string `json:"seller"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int64  `json:"stock"`
}

// Order is a placed order against a product.
type Order struct {
	Buyer      string `json:"buyer"`
	ProductID  uint64 `json:"productId"`
	Quantity   int64  `json:"quantity"`
	TotalPrice int64  `json:"totalPrice"`
	Status     string `json:"status"`
}

// Contract is the marketplace chaincode.
type Contract struct {
	core.BaseContract
	gate core.Gate
}

// New creates the contract.
func New() *Contract {
	return &Contract{}
}

// TxListProduct stores a new product listing and returns its id.
func (c *Contract) TxListProduct(seller, name, description string, price, stock int64) (uint64, error) {
	stub := c.GetStub()

	id, err := sequence.Next(stub, productRecordType)
	if err != nil {
		return 0, err
	}

	product := Product{
		Seller:      seller,
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
	}
	if err = records.Save(stub, productRecordType, formatID(id), product); err != nil {
		return 0, err
	}

	return id, nil
}

// TxUpdateProduct sets the price and stock of a listing. Unknown products are
// denied with code 101, non-sellers with code 102. Name and description are
// left untouched.
func (c *Contract) TxUpdateProduct(sender string, productID uint64, newPrice, newStock int64) error {
	stub := c.GetStub()

	var product Product
	err := records.Load(stub, productRecordType, formatID(productID), &product)
	if errors.Is(err, records.ErrNotFound) {
		return core.Errorf(core.CodeNotFound, "product %d not found", productID)
	}
	if err != nil {
		return err
	}

	if err = c.gate.RequireOwner(product.Seller, sender); err != nil {
		return err
	}

	product.Price = newPrice
	product.Stock = newStock

	return records.Save(stub, productRecordType, formatID(productID), product)
}

// TxPlaceOrder places an order for quantity units of a product. Unknown
// products and insufficient stock are both denied with code 101. On success
// the stock is decremented by exactly quantity and the order carries
// totalPrice = price * quantity.
func (c *Contract) TxPlaceOrder(buyer string, productID uint64, quantity int64) (uint64, error) {
	stub := c.GetStub()

	var product Product
	err := records.Load(stub, productRecordType, formatID(productID), &product)
	if errors.Is(err, records.ErrNotFound) {
		return 0, core.Errorf(core.CodeNotFound, "product %d not found", productID)
	}
	if err != nil {
		return 0, err
	}

	if product.Stock < quantity {
		return 0, core.Errorf(core.CodeNotFound,
			"insufficient stock of product %d: have %d, want %d", productID, product.Stock, quantity)
	}

	orderID, err := sequence.Next(stub, orderRecordType)
	if err != nil {
		return 0, err
	}

	order := Order{
		Buyer:      buyer,
		ProductID:  productID,
		Quantity:   quantity,
		TotalPrice: product.Price * quantity,
		Status:     StatusPlaced,
	}
	if err = records.Save(stub, orderRecordType, formatID(orderID), order); err != nil {
		return 0, err
	}

	product.Stock -= quantity
	if err = records.Save(stub, productRecordType, formatID(productID), product); err != nil {
		return 0, err
	}

	return orderID, nil
}

// QueryProduct returns the listing under productID, nil when none exists.
func (c *Contract) QueryProduct(productID uint64) (*Product, error) {
	var product Product
	err := records.Load(c.GetStub(), productRecordType, formatID(productID), &product)
	if errors.Is(err, records.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// QueryOrder returns the order under orderID, nil when none exists.
func (c *Contract) QueryOrder(orderID uint64) (*Order, error) {
	var order Order
	err := records.Load(c.GetStub(), orderRecordType, formatID(orderID), &order)
	if errors.Is(err, records.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

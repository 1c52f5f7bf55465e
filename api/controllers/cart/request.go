package cart

type addItemRequest struct {
	ProductID int `json:"productId" validate:"required,min=1"`
}

type changeQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

package models

// SignupRequest bounds Password in characters; multi-byte passwords are
// also checked against bcrypt's byte limit when hashed.
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CartItemRequest is the body of addtocart and removefromcart. ItemID is a
// pointer so that slot 0 passes the required check.
type CartItemRequest struct {
	ItemID *int `json:"itemId" binding:"required,cartslot"`
}

type AddProductRequest struct {
	Name     string  `json:"name" binding:"required"`
	Image    string  `json:"image"`
	Category string  `json:"category" binding:"required"`
	NewPrice float64 `json:"new_price" binding:"gte=0"`
	OldPrice float64 `json:"old_price" binding:"gte=0"`
}

type RemoveProductRequest struct {
	ID   *int64 `json:"id" binding:"required"`
	Name string `json:"name"`
}

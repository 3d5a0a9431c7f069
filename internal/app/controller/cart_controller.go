package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/moonhaven/moonjournal-backend/internal/app/model"
	"github.com/moonhaven/moonjournal-backend/internal/app/service"
	apperrors "github.com/moonhaven/moonjournal-backend/internal/errors"
	"github.com/moonhaven/moonjournal-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
	session     *middleware.CartSession
}

func NewCartController(cartService service.CartService, session *middleware.CartSession) *CartController {
	return &CartController{
		cartService: cartService,
		session:     session,
	}
}

type addToCartRequest struct {
	ProductID uint `json:"productId" binding:"required,gt=0"`
	Quantity  int  `json:"quantity" binding:"omitempty,gt=0"`
}

// GetCart handles GET /api/cart
// Reading a cart never fails from the client's point of view: a visitor
// without a session, an unknown cart id, or a storage error all come
// back as an empty cart.
func (cc *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cartID, err := cc.session.EnsureCartID(c)
	if err != nil {
		log.Error("Failed to establish cart session", err)
		c.JSON(http.StatusOK, model.EmptyCartView(0))
		return
	}

	cart, err := cc.cartService.GetCart(cartID)
	if err != nil {
		log.Error("Failed to fetch cart, returning empty cart", err, map[string]interface{}{
			"cart_id": cartID,
		})
		c.JSON(http.StatusOK, model.EmptyCartView(cartID))
		return
	}

	c.JSON(http.StatusOK, cart)
}

// AddToCart handles POST /api/cart/add
// Adding the same product twice merges quantities instead of creating a
// second line.
func (cc *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "productId is required and quantity must be positive")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cartID, err := cc.session.EnsureCartID(c)
	if err != nil {
		log.Error("Failed to establish cart session", err)
		apperrors.InternalError(c, "Failed to add item to cart")
		return
	}

	item, err := cc.cartService.AddToCart(cartID, req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to add item to cart", err, map[string]interface{}{
			"cart_id":    cartID,
			"product_id": req.ProductID,
		})
		apperrors.InternalError(c, "Failed to add item to cart")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// RemoveFromCart handles DELETE /api/cart/remove/:itemId
// Removing an item the cart does not hold is a no-op; removing from a
// cart that does not exist is an error.
func (cc *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid item ID")
		return
	}

	cartID, ok := middleware.CartID(c)
	if !ok {
		apperrors.BadRequest(c, apperrors.CartInvalidSession, "No cart session")
		return
	}

	if err := cc.cartService.RemoveFromCart(cartID, uint(itemID)); err != nil {
		if errors.Is(err, service.ErrCartNotFound) {
			apperrors.NotFound(c, apperrors.CartNotFound, "Cart not found")
			return
		}
		log.Error("Failed to remove item from cart", err, map[string]interface{}{
			"cart_id": cartID,
			"item_id": itemID,
		})
		apperrors.InternalError(c, "Failed to remove item from cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

// ClearCart handles DELETE /api/cart/clear
func (cc *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cartID, ok := middleware.CartID(c)
	if !ok {
		// Nothing to clear for a visitor without a cart
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
		return
	}

	if err := cc.cartService.ClearCart(cartID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"cart_id": cartID,
		})
		apperrors.InternalError(c, "Failed to clear cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moonhaven/moonjournal-backend/config"
	"github.com/moonhaven/moonjournal-backend/pkg/util"
)

const cartIDKey = "cart_id"

// CartSession manages the signed cart-session cookie. The cookie carries
// a single cart id; nothing else about the visitor is kept server-side.
type CartSession struct {
	secret     string
	cookieName string
	ttl        time.Duration
}

func NewCartSession(cfg *config.SessionConfig) *CartSession {
	return &CartSession{
		secret:     cfg.Secret,
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
	}
}

// Attach reads and validates the cart-session cookie. A missing or
// malformed cookie is not an error: the visitor simply has no cart yet.
func (s *CartSession) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(s.cookieName)
		if err == nil && token != "" {
			cartID, verr := util.ValidateCartToken(token, s.secret)
			if verr == nil {
				c.Set(cartIDKey, cartID)
			} else {
				// Tampered or expired cookie: discard it and start over
				GetLoggerFromContext(c).Warn("Discarding invalid cart cookie", map[string]interface{}{
					"error": verr.Error(),
				})
				c.SetCookie(s.cookieName, "", -1, "/", "", false, true)
			}
		}
		c.Next()
	}
}

// CartID returns the cart id attached by Attach, if any.
func CartID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(cartIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// EnsureCartID returns the visitor's cart id, minting a fresh one and
// setting the cookie when none is attached. The same id is reused for
// the rest of the request.
func (s *CartSession) EnsureCartID(c *gin.Context) (int64, error) {
	if id, ok := CartID(c); ok {
		return id, nil
	}

	id := util.GenerateCartID()
	token, err := util.GenerateCartToken(id, s.secret, s.ttl)
	if err != nil {
		return 0, err
	}

	c.SetCookie(s.cookieName, token, int(s.ttl.Seconds()), "/", "", false, true)
	c.Set(cartIDKey, id)
	return id, nil
}

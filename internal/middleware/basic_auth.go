package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// BasicAuthConfig contém as credenciais do painel administrativo
type BasicAuthConfig struct {
	Username     string
	PasswordHash string // hash bcrypt
}

// HashPassword gera o hash bcrypt de uma senha
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compara uma senha com seu hash
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// BasicAuth retorna um middleware de HTTP Basic com senha em bcrypt,
// usado pelas rotas administrativas
func BasicAuth(cfg BasicAuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok || username != cfg.Username || !CheckPassword(password, cfg.PasswordHash) {
			c.Header("WWW-Authenticate", `Basic realm="admin"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "credenciais inválidas",
			})
			return
		}

		c.Next()
	}
}

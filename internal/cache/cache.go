package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/cleberrangel/burndown-api/internal/model"
)

// ChartCache guarda respostas de gráfico já computadas por um TTL curto.
// O core de computação nunca cacheia; o cache vive na camada HTTP, que é
// quem decide reaproveitar respostas.
type ChartCache struct {
	mu       sync.RWMutex
	items    map[string]*cacheItem
	ttl      time.Duration
	stopChan chan struct{}
}

type cacheItem struct {
	chart      *model.ChartResponse
	expiration time.Time
}

// New cria um cache de gráficos com o TTL informado
func New(ttl time.Duration) *ChartCache {
	c := &ChartCache{
		items:    make(map[string]*cacheItem),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	go c.cleanup()

	return c
}

// Key monta a chave de cache de um milestone sob opções específicas
func Key(milestone string, parts ...string) string {
	return milestone + "|" + strings.Join(parts, "|")
}

// Get retorna a resposta cacheada, se ainda válida
func (c *ChartCache) Get(key string) (*model.ChartResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists || time.Now().After(item.expiration) {
		return nil, false
	}

	return item.chart, true
}

// Set guarda uma resposta com o TTL padrão
func (c *ChartCache) Set(key string, chart *model.ChartResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &cacheItem{
		chart:      chart,
		expiration: time.Now().Add(c.ttl),
	}
}

// InvalidateMilestone remove todas as entradas de um milestone
func (c *ChartCache) InvalidateMilestone(milestone string) {
	c.InvalidatePrefix(milestone + "|")
}

// InvalidatePrefix remove todas as chaves com o prefixo dado
func (c *ChartCache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
}

// Clear remove todas as entradas
func (c *ChartCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*cacheItem)
}

// Size retorna o número de entradas vivas ou não expiradas
func (c *ChartCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stop encerra a goroutine de limpeza
func (c *ChartCache) Stop() {
	close(c.stopChan)
}

// cleanup remove entradas expiradas periodicamente
func (c *ChartCache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopChan:
			return
		}
	}
}

func (c *ChartCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, item := range c.items {
		if now.After(item.expiration) {
			delete(c.items, key)
		}
	}
}

package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must be >= 0 (got %d)",
			c.Server.RateLimitPerMinute)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) exceeds max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}

	if c.Inventory.LowStockThreshold < 0 {
		return fmt.Errorf("inventory.low_stock_threshold must be >= 0 (got %d)",
			c.Inventory.LowStockThreshold)
	}
	if c.Inventory.TopBooksLimit <= 0 {
		return fmt.Errorf("inventory.top_books_limit must be > 0 (got %d)",
			c.Inventory.TopBooksLimit)
	}

	if c.Notify.BufferSize <= 0 {
		return fmt.Errorf("notify.buffer_size must be > 0 (got %d)", c.Notify.BufferSize)
	}

	return nil
}

package pricing

func (c *Client) updateStats(service, region, statType string) {
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()

	if _, exists := c.stats[service]; !exists {
		c.stats[service] = make(map[string]map[string]int)
	}
	if _, exists := c.stats[service][region]; !exists {
		c.stats[service][region] = map[string]int{
			"success": 0,
			"failure": 0,
			"cache":   0,
		}
	}
	c.stats[service][region][statType]++
}

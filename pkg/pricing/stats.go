package pricing

// Stats returns a copy of the lookup statistics
func (c *Client) Stats() Stats {
	c.cache.mu.RLock()
	defer c.cache.mu.RUnlock()

	statsCopy := make(Stats)
	for service, regions := range c.stats {
		statsCopy[service] = make(map[string]map[string]int)
		for region, stats := range regions {
			statsCopy[service][region] = make(map[string]int)
			for key, value := range stats {
				statsCopy[service][region][key] = value
			}
		}
	}
	return statsCopy
}

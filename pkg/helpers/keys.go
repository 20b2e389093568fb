package helpers

// Redis key helpers

// KeyDashboardStats is the Redis key caching the admin dashboard aggregate
const KeyDashboardStats = "dashboard:stats"

// KeyLoginRate is the rate-limit key for login attempts per client IP
func KeyLoginRate(ip string) string {
	return "rl:login:" + ip
}

// KeyDebugRate is the rate-limit key for the debug endpoint per client IP
func KeyDebugRate(ip string) string {
	return "rl:debug:" + ip
}

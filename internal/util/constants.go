package util

const (
	StoreMongo  = "mongo"
	StoreMySQL  = "mysql"
	StoreMemory = "memory"
)

// DefaultLeaderboardPageSize matches the console's leaderboard table.
const DefaultLeaderboardPageSize = 5

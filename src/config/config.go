package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const TIME_PARSE_FORMAT = "2006-01-02 15:04:05 -07:00"
const DATE_PARSE_FORMAT = "2006-01-02"

// supportedCurrencies is the closed set of currencies rate rules may be priced in.
var supportedCurrencies = map[string]bool{
	"USD": true,
	"EUR": true,
	"GBP": true,
	"PHP": true,
}

func IsSupportedCurrency(c string) bool {
	return supportedCurrencies[c]
}

// PendingHoldTTL is how long a pending allocation holds its slot before the
// expiry sweep cancels it.
func PendingHoldTTL() time.Duration {
	v := os.Getenv("PENDING_HOLD_TTL_MINUTES")
	minutes, err := strconv.Atoi(v)
	if err != nil || minutes < 1 {
		minutes = 30
	}
	return time.Duration(minutes) * time.Minute
}

package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

// Usage example on the command line:
// > go run main.go -url=http://localhost:8080/health -interval=5s -timeout=5m
func main() {
	urlPtr := flag.String("url", "http://localhost:8080/health", "the health endpoint to poll")
	intervalPtr := flag.Duration("interval", 5*time.Second, "the time between two attempts")
	timeoutPtr := flag.Duration("timeout", 5*time.Minute, "give up after this time")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	client := &http.Client{Timeout: *intervalPtr}
	deadline := time.Now().Add(*timeoutPtr)
	var totalWaitTime time.Duration
	for {
		res, err := client.Get(*urlPtr)
		if err == nil {
			res.Body.Close()
			if res.StatusCode == http.StatusOK {
				logger.Info("service is available", zap.String("url", *urlPtr), zap.Duration("waited", totalWaitTime))
				return
			}
			logger.Info("service not ready", zap.Int("status", res.StatusCode))
		} else {
			logger.Info("service not reachable", zap.Error(err))
		}
		if time.Now().After(deadline) {
			logger.Error("giving up", zap.Duration("waited", totalWaitTime))
			os.Exit(1)
		}
		totalWaitTime += *intervalPtr
		logger.Info("waiting", zap.Duration("total", totalWaitTime))
		time.Sleep(*intervalPtr)
	}
}

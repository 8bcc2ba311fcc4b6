// Package main - floorwatch
// Spectator and load tool: connects many WebSocket viewers to the office
// server, counts the event stream by type and occasionally pokes the
// trigger endpoint the way an impatient viewer would.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Config for the watcher
type Config struct {
	ServerURL       string
	NumClients      int
	TriggerInterval time.Duration
	TestDuration    time.Duration
}

// Stats tracks the observed stream
type Stats struct {
	MessagesReceived int64
	TriggersSent     int64
	Errors           int64

	mu           sync.Mutex
	eventsByType map[string]int64
}

var eventKinds = []string{"collaboration", "break", "meeting", "help"}

func main() {
	serverURL := flag.String("url", "ws://localhost:8080/ws", "WebSocket server URL")
	numClients := flag.Int("clients", 20, "Number of concurrent viewers")
	triggerInterval := flag.Duration("trigger", 30*time.Second, "Interval between viewer-triggered events (0 disables)")
	duration := flag.Duration("duration", 60*time.Second, "Watch duration")
	flag.Parse()

	config := Config{
		ServerURL:       *serverURL,
		NumClients:      *numClients,
		TriggerInterval: *triggerInterval,
		TestDuration:    *duration,
	}

	fmt.Println("=========================================")
	fmt.Println("👀 FLOORWATCH - Office Stream Monitor")
	fmt.Println("=========================================")
	fmt.Printf("Server: %s\n", config.ServerURL)
	fmt.Printf("Viewers: %d\n", config.NumClients)
	fmt.Printf("Trigger interval: %v\n", config.TriggerInterval)
	fmt.Printf("Duration: %v\n", config.TestDuration)
	fmt.Println("=========================================")

	ctx, cancel := context.WithTimeout(context.Background(), config.TestDuration)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		fmt.Println("\n⚠️ Interrupt received, stopping...")
		cancel()
	}()

	stats := runWatch(ctx, config)
	printResults(stats, config)
}

func runWatch(ctx context.Context, config Config) *Stats {
	stats := &Stats{eventsByType: make(map[string]int64)}

	var wg sync.WaitGroup

	fmt.Println("\n🚀 Starting viewers...")

	for i := 0; i < config.NumClients; i++ {
		wg.Add(1)
		go func(clientID int) {
			defer wg.Done()
			runViewer(ctx, clientID, config, stats)
		}(i)

		// Stagger client starts to avoid thundering herd
		time.Sleep(10 * time.Millisecond)
	}

	fmt.Printf("✅ All %d viewers started\n\n", config.NumClients)

	// Progress updates
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				recv := atomic.LoadInt64(&stats.MessagesReceived)
				trig := atomic.LoadInt64(&stats.TriggersSent)
				errs := atomic.LoadInt64(&stats.Errors)
				fmt.Printf("📊 Progress: Recv=%d Triggers=%d Errors=%d\n", recv, trig, errs)
			}
		}
	}()

	wg.Wait()
	return stats
}

func runViewer(ctx context.Context, clientID int, config Config, stats *Stats) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, config.ServerURL, nil)
	if err != nil {
		log.Printf("Viewer %d: Connection failed: %v", clientID, err)
		atomic.AddInt64(&stats.Errors, 1)
		return
	}
	defer conn.Close()

	// Receiver goroutine: count events by type.
	go func() {
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				return
			}
			atomic.AddInt64(&stats.MessagesReceived, 1)

			var event struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(message, &event); err != nil || event.Type == "" {
				continue
			}
			stats.mu.Lock()
			stats.eventsByType[event.Type]++
			stats.mu.Unlock()
		}
	}()

	// Only the first viewer triggers events, the rest just watch.
	if clientID != 0 || config.TriggerInterval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(config.TriggerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			action := map[string]interface{}{
				"type": "TRIGGER_EVENT",
				"payload": map[string]string{
					"kind": eventKinds[rand.Intn(len(eventKinds))],
				},
			}
			if err := conn.WriteJSON(action); err != nil {
				atomic.AddInt64(&stats.Errors, 1)
				return
			}
			atomic.AddInt64(&stats.TriggersSent, 1)
		}
	}
}

func printResults(stats *Stats, config Config) {
	fmt.Println("\n=========================================")
	fmt.Println("📊 FLOORWATCH RESULTS")
	fmt.Println("=========================================")

	recv := atomic.LoadInt64(&stats.MessagesReceived)
	trig := atomic.LoadInt64(&stats.TriggersSent)
	errs := atomic.LoadInt64(&stats.Errors)

	fmt.Printf("Messages Received: %d\n", recv)
	fmt.Printf("Triggers Sent:     %d\n", trig)
	fmt.Printf("Errors:            %d\n", errs)

	throughput := float64(recv) / config.TestDuration.Seconds()
	fmt.Printf("Stream rate:       %.2f msg/sec\n", throughput)

	stats.mu.Lock()
	types := make([]string, 0, len(stats.eventsByType))
	for t := range stats.eventsByType {
		types = append(types, t)
	}
	sort.Strings(types)

	fmt.Println("\nEvents by type:")
	for _, t := range types {
		fmt.Printf("  %-25s %d\n", t, stats.eventsByType[t])
	}
	stats.mu.Unlock()

	// Verdict
	fmt.Println("\n-----------------------------------------")
	if errs == 0 && recv > 0 {
		fmt.Println("✅ Stream healthy")
	} else if recv == 0 {
		fmt.Println("❌ No events received, is the server up?")
	} else {
		fmt.Println("⚠️ Errors detected during the watch")
	}
	fmt.Println("=========================================")

	// Export results as JSON
	stats.mu.Lock()
	byType := make(map[string]int64, len(stats.eventsByType))
	for t, n := range stats.eventsByType {
		byType[t] = n
	}
	stats.mu.Unlock()

	results := map[string]interface{}{
		"messages_received": recv,
		"triggers_sent":     trig,
		"errors":            errs,
		"stream_rate":       throughput,
		"events_by_type":    byType,
		"config": map[string]interface{}{
			"clients":  config.NumClients,
			"trigger":  config.TriggerInterval.String(),
			"duration": config.TestDuration.String(),
		},
	}

	jsonData, _ := json.MarshalIndent(results, "", "  ")
	os.WriteFile("floorwatch_results.json", jsonData, 0644)
	fmt.Println("\n📁 Results saved to floorwatch_results.json")
}

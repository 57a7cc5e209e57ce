package main

import (
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/atomic"
)

const (
	baseURL        = "http://127.0.0.1:8617"
	numWorkers     = 50
	numSubscribers = 20
	testDuration   = 10 * time.Second
)

// Tags of clans known to be in a war; override by editing before a run.
var tags = []string{"#2PP", "#8QU8J9LP", "#22G8YL992", "#9GLGQCCU", "#YQ8PGJC0"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== WarBoard Load Test ===")
	fmt.Printf("Workers: %d | Subscribers: %d | Duration: %s | Tags: %d\n\n", numWorkers, numSubscribers, testDuration, len(tags))

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			drain(resp)
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Opening sessions (GET /clan) ---")
	for _, tag := range tags {
		r := doGet("/clan", tag)
		fmt.Printf("  %-12s %d in %s\n", tag, r.status, fmtDur(r.latency))
	}

	received := &atomic.Int64{}
	stopSubs := startSubscribers(received)

	fmt.Println("\n--- Phase 2: Read load (fragments, war, health) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		tag := tags[rng.Intn(len(tags))]
		r := rng.Float64()
		switch {
		case r < 0.45:
			return doGet("/clan/fragments", tag)
		case r < 0.90:
			return doGet("/war", tag)
		default:
			return doGet("/health", "")
		}
	})

	stopSubs()
	fmt.Printf("\n  Events received by %d subscribers: %d\n", numSubscribers, received.Load())
}

// startSubscribers connects websocket clients to /events and counts every
// message they receive until the returned func is called.
func startSubscribers(received *atomic.Int64) func() {
	wsURL := "ws" + strings.TrimPrefix(baseURL, "http") + "/events"
	var wg sync.WaitGroup
	conns := make([]*websocket.Conn, 0, numSubscribers)
	for i := 0; i < numSubscribers; i++ {
		ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			fmt.Printf("  subscriber %d: %s\n", i, err)
			continue
		}
		conns = append(conns, ws)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				_, msg, err := ws.ReadMessage()
				if err != nil {
					return
				}
				var event struct {
					Event string `json:"event"`
				}
				if json.Unmarshal(msg, &event) == nil && event.Event != "" {
					received.Inc()
				}
			}
		}()
	}
	return func() {
		for _, ws := range conns {
			_ = ws.Close()
		}
		wg.Wait()
	}
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		return
	}
	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

// doGet counts a 404 from /war or /clan/fragments as success: the clan may
// simply not have war data yet.
func doGet(path, tag string) result {
	target := baseURL + path
	if tag != "" {
		target += "?tag=" + url.QueryEscape(tag)
	}
	endpoint := "GET " + path

	start := time.Now()
	resp, err := httpClient.Get(target)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	drain(resp)
	ok := resp.StatusCode == http.StatusOK || (tag != "" && resp.StatusCode == http.StatusNotFound)
	return result{endpoint, resp.StatusCode, lat, !ok}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

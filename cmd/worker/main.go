package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ayurbalance/wellness-platform/internal/chatbot"
	"github.com/ayurbalance/wellness-platform/internal/config"
	"github.com/ayurbalance/wellness-platform/internal/events"
)

func workerConcurrency() int {
	v := os.Getenv("WORKER_CONCURRENCY")
	if v == "" {
		return 2
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 2
	}
	if n > 50 {
		return 50
	}
	return n
}

// apiClient routes every mutation through the server, which keeps the server's
// store the single writer. The worker never opens the mirror itself: a second
// store over the same slots would append onto a stale snapshot and clobber
// writes the server persisted in between.
type apiClient struct {
	base string
	hc   *http.Client
}

func (a *apiClient) post(ctx context.Context, path string, body any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.base+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("POST %s: status %d", path, resp.StatusCode)
	}
	return nil
}

func main() {
	cfg := config.Load()

	api := &apiClient{base: cfg.ServerURL, hc: &http.Client{Timeout: 10 * time.Second}}

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("rabbit dial: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("rabbit channel: %v", err)
	}
	defer ch.Close()

	if err := events.DeclareQueues(ch, cfg.RabbitQueue); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	concurrency := workerConcurrency()
	if err := ch.Qos(concurrency, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	delay := time.Duration(cfg.AssistantReplyDelayMs) * time.Millisecond

	log.Printf("worker started, queue=%s concurrency=%d server=%s", cfg.RabbitQueue, concurrency, cfg.ServerURL)

	jobs := make(chan amqp.Delivery, concurrency*2)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()
			for d := range jobs {
				var job events.ReplyJob
				if err := json.Unmarshal(d.Body, &job); err != nil || job.RequestID == "" {
					log.Printf("worker=%d bad message: %v", workerID, err)
					_ = d.Nack(false, false)
					continue
				}

				if err := handleReply(ctx, api, job, delay); err != nil {
					log.Printf("worker=%d reply request=%s err=%v", workerID, job.RequestID, err)
					_ = d.Nack(false, false)
					continue
				}

				if err := d.Ack(false); err != nil {
					log.Printf("worker=%d ack failed request=%s err=%v", workerID, job.RequestID, err)
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("worker shutting down")
			close(jobs)
			wg.Wait()
			return

		case d, ok := <-msgs:
			if !ok {
				log.Printf("delivery channel closed")
				time.Sleep(1 * time.Second)
				continue
			}
			jobs <- d
		}
	}
}

// handleReply waits out the simulated typing delay, applies any actions the
// assistant inferred from the text, then posts the reply as the doctor. Every
// write lands on the server's live collections, never a startup snapshot.
func handleReply(ctx context.Context, api *apiClient, job events.ReplyJob, delay time.Duration) error {
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	resp := chatbot.Evaluate(job.Text)
	if resp.LogWaterMl > 0 {
		if err := api.post(ctx, "/progress/water", map[string]any{"delta_ml": resp.LogWaterMl}); err != nil {
			return err
		}
	}
	if resp.MarkMeal {
		if err := api.post(ctx, "/progress/meals/taken", nil); err != nil {
			return err
		}
	}
	return api.post(ctx, "/requests/"+job.RequestID+"/messages", map[string]any{
		"from": "doctor",
		"text": resp.Reply,
	})
}

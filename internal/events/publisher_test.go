package events

import (
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
)

type declaredQueue struct {
	name string
	args amqp.Table
}

type recordingDeclarer struct {
	declared []declaredQueue
}

func (r *recordingDeclarer) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	r.declared = append(r.declared, declaredQueue{name: name, args: args})
	return amqp.Queue{Name: name}, nil
}

func TestDeclareQueues_Topology(t *testing.T) {
	rec := &recordingDeclarer{}
	if err := DeclareQueues(rec, "assistant_replies"); err != nil {
		t.Fatalf("declare: %v", err)
	}
	if len(rec.declared) != 3 {
		t.Fatalf("expected 3 queues, got %d", len(rec.declared))
	}

	byName := map[string]amqp.Table{}
	for _, q := range rec.declared {
		byName[q.name] = q.args
	}

	if args := byName["assistant_replies.dlq"]; args != nil {
		t.Fatalf("dlq takes no arguments, got %v", args)
	}
	if got := byName["assistant_replies.retry"]["x-dead-letter-routing-key"]; got != "assistant_replies" {
		t.Fatalf("retry queue must dead-letter back to main, got %v", got)
	}
	if got := byName["assistant_replies"]["x-dead-letter-routing-key"]; got != "assistant_replies.dlq" {
		t.Fatalf("main queue must dead-letter to the dlq, got %v", got)
	}
}

func TestDeclareQueues_SameArgsOnRedeclare(t *testing.T) {
	rec := &recordingDeclarer{}
	if err := DeclareQueues(rec, "assistant_replies"); err != nil {
		t.Fatalf("declare: %v", err)
	}
	if err := DeclareQueues(rec, "assistant_replies"); err != nil {
		t.Fatalf("redeclare: %v", err)
	}

	// a consumer declaring after the producer must present identical arguments
	first, second := rec.declared[:3], rec.declared[3:]
	for i := range first {
		if first[i].name != second[i].name {
			t.Fatalf("queue order changed: %q vs %q", first[i].name, second[i].name)
		}
		a, b := first[i].args, second[i].args
		if len(a) != len(b) {
			t.Fatalf("queue %q: argument count differs", first[i].name)
		}
		for k, v := range a {
			if b[k] != v {
				t.Fatalf("queue %q: argument %q differs: %v vs %v", first[i].name, k, v, b[k])
			}
		}
	}
}

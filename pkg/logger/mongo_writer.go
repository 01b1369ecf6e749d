package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoQueueSize = 4096
	mongoBatchSize = 50
	mongoDrainTick = 2 * time.Second
)

// MongoWriter es un io.Writer para zerolog que guarda cada línea JSON en una colección
// MongoDB de forma asíncrona (cola con buffer + InsertMany por lotes).
// Si la cola está llena la línea se descarta: el log nunca bloquea la petición.
type MongoWriter struct {
	client *mongo.Client
	col    *mongo.Collection
	queue  chan bson.M
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// NewMongoWriter conecta a uri y arranca el drenado en segundo plano. Llamar Close al apagar.
func NewMongoWriter(ctx context.Context, uri, database, collection string) (*MongoWriter, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(5)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("logger/mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("logger/mongo: ping: %w", err)
	}

	col := client.Database(database).Collection(collection)
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "time", Value: -1}},
	})

	w := &MongoWriter{
		client: client,
		col:    col,
		queue:  make(chan bson.M, mongoQueueSize),
		done:   make(chan struct{}),
	}
	w.wg.Add(1)
	go w.drainLoop()
	return w, nil
}

// Write decodifica la línea JSON de zerolog y la encola.
func (w *MongoWriter) Write(p []byte) (int, error) {
	var doc bson.M
	if err := json.Unmarshal(p, &doc); err != nil {
		doc = bson.M{"message": string(p)}
	}
	select {
	case w.queue <- doc:
	default:
	}
	return len(p), nil
}

func (w *MongoWriter) drainLoop() {
	defer w.wg.Done()
	ticker := time.NewTicker(mongoDrainTick)
	defer ticker.Stop()

	batch := make([]interface{}, 0, mongoBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = w.col.InsertMany(ctx, batch)
		batch = batch[:0]
	}

	for {
		select {
		case doc := <-w.queue:
			batch = append(batch, doc)
			if len(batch) >= mongoBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-w.done:
			for len(w.queue) > 0 {
				batch = append(batch, <-w.queue)
			}
			flush()
			return
		}
	}
}

// Close vacía la cola y desconecta. Seguro de llamar varias veces.
func (w *MongoWriter) Close() {
	w.once.Do(func() {
		close(w.done)
		w.wg.Wait()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = w.client.Disconnect(ctx)
	})
}

package kafka

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"intern-portal/config"
	"intern-portal/logger"

	"github.com/segmentio/kafka-go"
)

const consumerGroup = "intern-portal-consumer-group"

var (
	consumer        *kafka.Reader
	consumerMutex   sync.Mutex
	consumerRunning bool
	consumerStop    chan struct{}

	// emailProcessor handles email.send events read from the emails topic
	emailProcessor func(map[string]interface{}) error
)

// InitConsumer initializes a Kafka reader on the emails topic. The consumer
// group makes delivery resume from the committed offset across restarts.
func InitConsumer() error {
	consumerMutex.Lock()
	defer consumerMutex.Unlock()

	if config.AppConfig.KafkaBrokers == "" {
		logger.Info("Kafka consumer is disabled (KAFKA_BROKERS is empty)")
		return nil
	}

	brokers := validBrokerList()
	if len(brokers) == 0 {
		logger.Warn("No valid Kafka brokers configured for consumer")
		return nil
	}

	consumer = kafka.NewReader(kafka.ReaderConfig{
		Brokers:          brokers,
		Topic:            config.AppConfig.KafkaEmailTopic,
		GroupID:          consumerGroup,
		StartOffset:      kafka.LastOffset,
		CommitInterval:   time.Second,
		MaxBytes:         10e6,
		SessionTimeout:   20 * time.Second,
		ReadBackoffMin:   100 * time.Millisecond,
		ReadBackoffMax:   1 * time.Second,
		QueueCapacity:    100,
		RebalanceTimeout: 60 * time.Second,
	})

	consumerStop = make(chan struct{})
	logger.Info("Kafka consumer initialized. Brokers=%v, Topic=%s, Group=%s",
		brokers, config.AppConfig.KafkaEmailTopic, consumerGroup)
	return nil
}

// RegisterEmailProcessor registers the callback that handles email.send events
func RegisterEmailProcessor(fn func(map[string]interface{}) error) {
	consumerMutex.Lock()
	defer consumerMutex.Unlock()
	emailProcessor = fn
}

// StartConsumer starts consuming messages in a separate goroutine.
// Runs continuously until StopConsumer() is called.
func StartConsumer() {
	consumerMutex.Lock()
	if consumer == nil {
		consumerMutex.Unlock()
		logger.Warn("Consumer not initialized, cannot start")
		return
	}
	if consumerRunning {
		consumerMutex.Unlock()
		logger.Warn("Consumer already running")
		return
	}
	consumerRunning = true
	consumerMutex.Unlock()

	go consumeMessages()
	logger.Info("Kafka consumer started")
}

func consumeMessages() {
	defer func() {
		consumerMutex.Lock()
		consumerRunning = false
		consumerMutex.Unlock()
	}()

	for {
		select {
		case <-consumerStop:
			logger.Info("Kafka consumer stopping")
			return
		default:
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		msg, err := consumer.ReadMessage(ctx)
		cancel()

		if err != nil {
			if err == context.DeadlineExceeded {
				continue
			}
			logger.Warn("Kafka consumer read error: %v", err)
			time.Sleep(time.Second)
			continue
		}

		processMessage(msg)
	}
}

// processMessage dispatches one message to the registered processor. A
// processing failure parks the payload instead of blocking the partition.
func processMessage(msg kafka.Message) {
	var event map[string]interface{}
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		logger.Error("Skipping malformed message on %s: %v", msg.Topic, err)
		return
	}

	consumerMutex.Lock()
	processor := emailProcessor
	consumerMutex.Unlock()

	producerMutex.Lock()
	sink := deadLetterSink
	producerMutex.Unlock()

	if processor == nil {
		logger.Warn("No email processor registered, dropping message from %s", msg.Topic)
		return
	}

	if err := processor(event); err != nil {
		logger.Error("Error processing message from %s: %v", msg.Topic, err)
		if sink != nil {
			if dlErr := sink(msg.Topic, string(msg.Key), msg.Value, err.Error()); dlErr != nil {
				logger.Error("Failed to park failed message: %v", dlErr)
			}
		}
	}
}

// StopConsumer signals the consume loop to exit and closes the reader
func StopConsumer() error {
	consumerMutex.Lock()
	defer consumerMutex.Unlock()

	if consumerStop != nil {
		select {
		case <-consumerStop:
		default:
			close(consumerStop)
		}
	}
	if consumer != nil {
		err := consumer.Close()
		consumer = nil
		return err
	}
	return nil
}

// IsConsumerRunning reports whether the consume loop is active
func IsConsumerRunning() bool {
	consumerMutex.Lock()
	defer consumerMutex.Unlock()
	return consumerRunning
}

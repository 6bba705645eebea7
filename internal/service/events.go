package service

import (
	"encoding/json"

	"github.com/IBM/sarama"
	"github.com/bookhaven/library-service/internal/model"
)

// EventLog publishes loan audit events. Failures are the caller's to log;
// event publication never fails a borrow or return.
type EventLog interface {
	Log(e model.LoanEvent) error
}

type kafkaEventLog struct {
	producer sarama.SyncProducer
	topic    string
}

func NewEventLog(producer sarama.SyncProducer, topic string) EventLog {
	return &kafkaEventLog{
		producer: producer,
		topic:    topic,
	}
}

func (l *kafkaEventLog) Log(e model.LoanEvent) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{Topic: l.topic, Value: sarama.StringEncoder(data)}
	if _, _, err = l.producer.SendMessage(msg); err != nil {
		return err
	}
	return nil
}

// NopEventLog drops events; used when Kafka is not configured.
type NopEventLog struct{}

func (NopEventLog) Log(model.LoanEvent) error { return nil }

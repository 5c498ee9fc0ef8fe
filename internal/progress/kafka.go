package progress

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
	"github.com/zeromicro/go-zero/core/logx"

	"buddhabrot/internal/fractal"
)

var ErrNoBrokers = errors.New("progress: kafka brokers are required")

// KafkaConf 配置进度事件的 Kafka 主题，Brokers 为空表示不启用
type KafkaConf struct {
	Brokers []string `json:",optional"`
	Topic   string   `json:",default=buddhabrot.progress"`
	// RunID 作为消息 key，同一次运行的事件落在同一个分区里
	RunID string `json:",optional"`
}

// Enabled 报告是否配置了 broker
func (c KafkaConf) Enabled() bool {
	return len(c.Brokers) > 0
}

// messageWriter 是 *kafka.Writer 中用到的部分
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Event 是写入 Kafka 的消息体
type Event struct {
	Kind      string                  `json:"kind"`
	RunID     string                  `json:"run_id,omitempty"`
	Time      time.Time               `json:"time"`
	Partition *fractal.PartitionEvent `json:"partition,omitempty"`
	Segment   *fractal.SegmentEvent   `json:"segment,omitempty"`
}

const (
	KindPartition = "partition"
	KindSegment   = "segment"
)

// KafkaObserver 把进度事件异步发布到 Kafka。
// 发布失败只记日志，不影响计算。
type KafkaObserver struct {
	writer messageWriter
	runID  string
	now    func() time.Time
}

// NewKafkaObserver 创建异步 writer
func NewKafkaObserver(c KafkaConf) (*KafkaObserver, error) {
	if !c.Enabled() {
		return nil, ErrNoBrokers
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(c.Brokers...),
		Topic:        c.Topic,
		Balancer:     &kafka.Hash{},
		Async:        true,
		BatchTimeout: 100 * time.Millisecond,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logx.Errorw("publish progress events",
					logx.Field("count", len(messages)),
					logx.Field("error", err.Error()))
			}
		},
	}
	return newKafkaObserver(w, c.RunID), nil
}

func newKafkaObserver(w messageWriter, runID string) *KafkaObserver {
	return &KafkaObserver{writer: w, runID: runID, now: time.Now}
}

func (o *KafkaObserver) PartitionDone(ev fractal.PartitionEvent) {
	o.publish(Event{Kind: KindPartition, Partition: &ev}, strconv.Itoa(ev.Index))
}

func (o *KafkaObserver) SegmentDone(ev fractal.SegmentEvent) {
	o.publish(Event{Kind: KindSegment, Segment: &ev}, "segment-"+strconv.Itoa(ev.Segment))
}

func (o *KafkaObserver) publish(ev Event, fallbackKey string) {
	ev.RunID = o.runID
	ev.Time = o.now()
	body, err := sonic.Marshal(ev)
	if err != nil {
		logx.Errorw("marshal progress event", logx.Field("error", err.Error()))
		return
	}

	key := o.runID
	if key == "" {
		key = fallbackKey
	}
	if err := o.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(key),
		Value: body,
	}); err != nil {
		logx.Errorw("write progress event", logx.Field("kind", ev.Kind), logx.Field("error", err.Error()))
	}
}

// Close 刷新并关闭 writer
func (o *KafkaObserver) Close() error {
	return o.writer.Close()
}

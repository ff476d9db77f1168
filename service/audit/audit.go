package audit

import (
	"encoding/json"
	"log/slog"
	"symposium-agent-backend/dao"
	"symposium-agent-backend/model"

	"github.com/avast/retry-go/v4"
)

const (
	entryChanSize = 100
	workerNum     = 4

	writeAttempts = 3
)

// Entry 一条审计记录，对应流水线的一次process调用
type Entry struct {
	ConsultantID uint            `json:"consultant_id"`
	AdapterType  string          `json:"adapter_type"`
	Request      json.RawMessage `json:"request"`
	Response     json.RawMessage `json:"response"`
	Success      bool            `json:"success"`
	ErrorMessage string          `json:"error_message"`
	ElapsedMs    int64           `json:"elapsed_ms"`
}

// Recorder 异步审计日志写入器：流水线只管投递，落库由后台worker完成
type Recorder struct {
	entryChan chan *Entry
	workerNum int
}

// RecorderInstance Recorder单例实例
var RecorderInstance *Recorder

func init() {
	RecorderInstance = &Recorder{
		entryChan: make(chan *Entry, entryChanSize),
		workerNum: workerNum,
	}
}

func (r *Recorder) Run() {
	for i := 1; i <= r.workerNum; i++ {
		go r.writeEntries(i)
	}
}

// Append 投递一条审计记录，从流水线视角即发即忘
func (r *Recorder) Append(entry *Entry) {
	r.entryChan <- entry
}

func (r *Recorder) writeEntries(id int) {
	slog.Info("Starting audit worker", "worker_id", id)
	defer slog.Info("Audit worker exit", "worker_id", id)

	for entry := range r.entryChan {
		log := &model.APICallLog{
			ConsultantID: entry.ConsultantID,
			AdapterType:  entry.AdapterType,
			Request:      entry.Request,
			Response:     entry.Response,
			Success:      entry.Success,
			ErrorMessage: entry.ErrorMessage,
			ElapsedMs:    entry.ElapsedMs,
		}

		err := retry.Do(
			func() error {
				return dao.CreateAPICallLogs([]*model.APICallLog{log})
			},
			retry.Attempts(writeAttempts),
			retry.DelayType(retry.BackOffDelay),
			retry.OnRetry(func(n uint, err error) {
				slog.Warn("Retrying audit log write",
					"attempt", n+1,
					"consultant_id", entry.ConsultantID,
					"err", err)
			}),
		)
		if err != nil {
			slog.Error("Failed to write audit log after retries",
				"consultant_id", entry.ConsultantID,
				"err", err)
		}
	}
}

package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/streamhive/streams-ms-go/internal/model"
)

const (
	TypeIngestRecording = "ingest:recording"
	TypeNotifyFollowers = "notification:fanout"
	TypeSessionEnded    = "session:ended"
)

type IngestRecordingPayload struct {
	StreamKey        string `json:"stream_key"`
	RecordingPath    string `json:"recording_path"`
	OriginalFilename string `json:"original_filename"`
}

// NewIngestRecordingTask creates an Asynq task for ingesting a finished recording.
func NewIngestRecordingTask(streamKey, recordingPath, originalFilename string) (*asynq.Task, error) {
	p := IngestRecordingPayload{
		StreamKey:        streamKey,
		RecordingPath:    recordingPath,
		OriginalFilename: originalFilename,
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal ingest-recording payload: %w", err)
	}
	return asynq.NewTask(TypeIngestRecording, data), nil
}

// ParseIngestRecordingPayload parses the task payload to IngestRecordingPayload.
func ParseIngestRecordingPayload(t *asynq.Task) (IngestRecordingPayload, error) {
	var p IngestRecordingPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return IngestRecordingPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}

// NewNotifyFollowersTask creates an Asynq task for one fanout batch.
func NewNotifyFollowersTask(job model.FanoutJob) (*asynq.Task, error) {
	data, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("could not marshal fanout payload: %w", err)
	}
	return asynq.NewTask(TypeNotifyFollowers, data), nil
}

// ParseNotifyFollowersPayload parses the task payload to a model.FanoutJob.
func ParseNotifyFollowersPayload(t *asynq.Task) (model.FanoutJob, error) {
	var job model.FanoutJob
	if err := json.Unmarshal(t.Payload(), &job); err != nil {
		return model.FanoutJob{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return job, nil
}

type SessionEndedPayload struct {
	StreamKey string `json:"stream_key"`
}

// NewSessionEndedTask creates an Asynq task announcing a session ended.
func NewSessionEndedTask(streamKey string) (*asynq.Task, error) {
	data, err := json.Marshal(SessionEndedPayload{StreamKey: streamKey})
	if err != nil {
		return nil, fmt.Errorf("could not marshal session-ended payload: %w", err)
	}
	return asynq.NewTask(TypeSessionEnded, data), nil
}

// ParseSessionEndedPayload parses the task payload to SessionEndedPayload.
func ParseSessionEndedPayload(t *asynq.Task) (SessionEndedPayload, error) {
	var p SessionEndedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return SessionEndedPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}

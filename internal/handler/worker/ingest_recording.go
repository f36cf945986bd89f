package worker

import (
	"context"
	"log"

	"github.com/streamhive/streams-ms-go/internal/port"
	"github.com/streamhive/streams-ms-go/internal/task"
)

// IngestRecordingHandler handles an ingest-recording task.
// It converts the incoming task payload to the input expected by
// the ingestion service and delegates the call.
func IngestRecordingHandler(ctx context.Context, p task.IngestRecordingPayload, svc port.RecordingIngester) error {
	in := port.IngestInput{
		StreamKey:        p.StreamKey,
		RecordingPath:    p.RecordingPath,
		OriginalFilename: p.OriginalFilename,
	}
	v, err := svc.Ingest(ctx, in)
	if err != nil {
		log.Printf("❌  Failed to ingest recording %q for stream %q: %v", p.OriginalFilename, p.StreamKey, err)
		return err
	}

	log.Printf("✅  Successfully ingested recording %q into VOD #%s", p.OriginalFilename, v.ID)
	return nil
}

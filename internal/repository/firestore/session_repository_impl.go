package firestore

import (
	"context"
	"sort"
	"strconv"
	"time"

	"ai-langcoach-be/internal/entity"
	"ai-langcoach-be/internal/pkg/apperror"
	"ai-langcoach-be/internal/repository/contract"
	"ai-langcoach-be/pkg/audiocodec"

	cloudfirestore "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	sessionsCollection  = "sessions"
	ttsAudioCollection  = "tts_audio"
	recordingCollection = "recording"
)

// sessionDocument is the primary document under `sessions`. Chunk counts
// double as completion markers: a count > 0 guarantees that many chunk
// documents exist in the matching sub-collection.
type sessionDocument struct {
	Id              string `firestore:"id"`
	UserId          string `firestore:"user_id"`
	Prompt          string `firestore:"prompt"`
	Language        string `firestore:"language"`
	Summary         string `firestore:"summary"`
	Translation     string `firestore:"translation"`
	CreatedAt       int64  `firestore:"created_at"`
	UpdatedAt       int64  `firestore:"updated_at"`
	TTSAudioChunks  int    `firestore:"tts_audio_chunks"`
	RecordingChunks int    `firestore:"recording_chunks"`
}

// chunkDocument holds one bounded slice of a base64 payload. Index is the
// reassembly key; document ids happen to match it but are not relied on.
type chunkDocument struct {
	Index int    `firestore:"index"`
	Data  string `firestore:"data"`
}

type SessionRepositoryImpl struct {
	client *cloudfirestore.Client
}

func NewSessionRepository(client *cloudfirestore.Client) contract.SessionRepository {
	return &SessionRepositoryImpl{client: client}
}

func (r *SessionRepositoryImpl) CreateSession(ctx context.Context, session *entity.Session) error {
	encoded := audiocodec.Encode(session.TTSAudio)
	chunks := audiocodec.SplitChunks(encoded, audiocodec.ChunkSize)

	docRef := r.client.Collection(sessionsCollection).Doc(session.Id)

	// Chunks land before the primary document. Firestore gives no
	// cross-document transaction here, so a crash mid-write must leave the
	// session invisible rather than claiming chunks that were never written.
	if err := r.writeChunks(ctx, docRef, ttsAudioCollection, chunks); err != nil {
		return err
	}

	doc := sessionDocument{
		Id:             session.Id,
		UserId:         session.UserId,
		Prompt:         session.Prompt,
		Language:       session.Language,
		Summary:        session.Summary,
		Translation:    session.Translation,
		CreatedAt:      session.CreatedAt.Unix(),
		UpdatedAt:      session.UpdatedAt.Unix(),
		TTSAudioChunks: len(chunks),
	}
	if _, err := docRef.Set(ctx, doc); err != nil {
		return apperror.Wrap(apperror.KindStore, "failed to write session document", err)
	}

	return nil
}

func (r *SessionRepositoryImpl) GetUserSessions(ctx context.Context, userId string) ([]*entity.Session, error) {
	iter := r.client.Collection(sessionsCollection).
		Where("user_id", "==", userId).
		Documents(ctx)
	defer iter.Stop()

	sessions := make([]*entity.Session, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, apperror.Wrap(apperror.KindStore, "failed to query sessions", err)
		}

		var doc sessionDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, apperror.Wrap(apperror.KindStore, "failed to decode session document", err)
		}

		session := docToSession(&doc)

		if doc.TTSAudioChunks > 0 {
			audio, err := r.readChunks(ctx, snap.Ref, ttsAudioCollection, doc.TTSAudioChunks)
			if err != nil {
				return nil, err
			}
			session.TTSAudio = audio
		}
		if doc.RecordingChunks > 0 {
			recording, err := r.readChunks(ctx, snap.Ref, recordingCollection, doc.RecordingChunks)
			if err != nil {
				return nil, err
			}
			session.Recording = recording
		}

		sessions = append(sessions, session)
	}

	return sessions, nil
}

func (r *SessionRepositoryImpl) SaveRecording(ctx context.Context, sessionId, userId, audioData string) error {
	encoded := audiocodec.StripDataURL(audioData)
	if _, err := audiocodec.Decode(encoded); err != nil {
		// Reject malformed input before touching the store.
		return err
	}

	docRef := r.client.Collection(sessionsCollection).Doc(sessionId)

	snap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return apperror.New(apperror.KindNotFound, "session not found")
		}
		return apperror.Wrap(apperror.KindStore, "failed to load session document", err)
	}

	var doc sessionDocument
	if err := snap.DataTo(&doc); err != nil {
		return apperror.Wrap(apperror.KindStore, "failed to decode session document", err)
	}
	if doc.UserId != userId {
		// Cross-user access reads as not-found so session existence never
		// leaks between users.
		return apperror.New(apperror.KindNotFound, "session not found")
	}

	chunks := audiocodec.SplitChunks(encoded, audiocodec.ChunkSize)
	if err := r.writeChunks(ctx, docRef, recordingCollection, chunks); err != nil {
		return err
	}

	// The count flips last. Until it lands, readers see the session with its
	// previous recording state instead of a partially written one.
	_, err = docRef.Update(ctx, []cloudfirestore.Update{
		{Path: "recording_chunks", Value: len(chunks)},
		{Path: "updated_at", Value: time.Now().Unix()},
	})
	if err != nil {
		return apperror.Wrap(apperror.KindStore, "failed to update session document", err)
	}

	return nil
}

func (r *SessionRepositoryImpl) writeChunks(ctx context.Context, sessionRef *cloudfirestore.DocumentRef, collection string, chunks []string) error {
	for i, chunk := range chunks {
		_, err := sessionRef.Collection(collection).
			Doc(strconv.Itoa(i)).
			Set(ctx, chunkDocument{Index: i, Data: chunk})
		if err != nil {
			return apperror.Wrap(apperror.KindStore, "failed to write audio chunk", err)
		}
	}
	return nil
}

// readChunks loads the first count chunk documents by index. A shorter
// recording overwrites a longer one without deleting the old tail, so
// anything past the declared count is a leftover and must not be joined in.
func (r *SessionRepositoryImpl) readChunks(ctx context.Context, sessionRef *cloudfirestore.DocumentRef, collection string, count int) ([]byte, error) {
	iter := sessionRef.Collection(collection).
		OrderBy("index", cloudfirestore.Asc).
		Limit(count).
		Documents(ctx)
	defer iter.Stop()

	var chunks []chunkDocument
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, apperror.Wrap(apperror.KindStore, "failed to read audio chunks", err)
		}

		var chunk chunkDocument
		if err := snap.DataTo(&chunk); err != nil {
			return nil, apperror.Wrap(apperror.KindStore, "failed to decode audio chunk", err)
		}
		chunks = append(chunks, chunk)
	}

	return assembleChunks(chunks, count)
}

func docToSession(doc *sessionDocument) *entity.Session {
	return &entity.Session{
		Id:          doc.Id,
		UserId:      doc.UserId,
		Prompt:      doc.Prompt,
		Language:    doc.Language,
		Summary:     doc.Summary,
		Translation: doc.Translation,
		CreatedAt:   time.Unix(doc.CreatedAt, 0),
		UpdatedAt:   time.Unix(doc.UpdatedAt, 0),
	}
}

// assembleChunks joins chunk payloads back into audio bytes. It sorts by
// index itself; the query orders by index too, but iteration order is not
// part of the storage contract. Chunks at or beyond count are leftovers
// from a longer previous payload and are dropped.
func assembleChunks(chunks []chunkDocument, count int) ([]byte, error) {
	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Index < chunks[j].Index
	})

	parts := make([]string, 0, count)
	for _, chunk := range chunks {
		if chunk.Index >= count {
			break
		}
		parts = append(parts, chunk.Data)
	}

	return audiocodec.Decode(audiocodec.JoinChunks(parts))
}

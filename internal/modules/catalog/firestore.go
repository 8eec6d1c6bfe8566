package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type FirestoreConfig struct {
	ProjectID       string
	CredentialsFile string
	Collection      string
}

// FirestoreSource reads products from a Cloud Firestore collection.
type FirestoreSource struct {
	Client     *firestore.Client
	Collection string
}

func NewFirestore(ctx context.Context, cfg FirestoreConfig) (*FirestoreSource, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	var fbCfg *firebase.Config
	if cfg.ProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}
	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase init: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	col := strings.TrimSpace(cfg.Collection)
	if col == "" {
		col = "products"
	}
	return &FirestoreSource{Client: client, Collection: col}, nil
}

func (s *FirestoreSource) All(ctx context.Context) ([]RawProduct, error) {
	snaps, err := s.Client.Collection(s.Collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore scan %s: %w", s.Collection, err)
	}
	out := make([]RawProduct, 0, len(snaps))
	for _, snap := range snaps {
		raw, err := rawFromSnapshot(snap)
		if err != nil {
			// skip the document, keep the scan
			continue
		}
		out = append(out, raw)
	}
	return out, nil
}

func (s *FirestoreSource) Get(ctx context.Context, id string) (RawProduct, error) {
	ref := s.Client.Collection(s.Collection).Doc(id)
	if ref == nil {
		return RawProduct{}, ErrNotFound
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return RawProduct{}, ErrNotFound
		}
		return RawProduct{}, fmt.Errorf("firestore get %s/%s: %w", s.Collection, id, err)
	}
	if !snap.Exists() {
		return RawProduct{}, ErrNotFound
	}
	return rawFromSnapshot(snap)
}

func (s *FirestoreSource) Close() error { return s.Client.Close() }

// rawFromSnapshot goes through JSON so the loosely-typed fields hit the same
// decoders as every other source.
func rawFromSnapshot(snap *firestore.DocumentSnapshot) (RawProduct, error) {
	b, err := json.Marshal(snap.Data())
	if err != nil {
		return RawProduct{}, err
	}
	raw, err := DecodeRaw(b)
	if err != nil {
		return RawProduct{}, err
	}
	if raw.ID == "" {
		raw.ID = snap.Ref.ID
	}
	return raw, nil
}

// Upsert writes a document keyed by its id; used by the seeding tool.
func (s *FirestoreSource) Upsert(ctx context.Context, raw RawProduct) error {
	b, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	var data map[string]any
	if err := json.Unmarshal(b, &data); err != nil {
		return err
	}
	_, err = s.Client.Collection(s.Collection).Doc(raw.ID).Set(ctx, data)
	return err
}

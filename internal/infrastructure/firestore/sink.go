package firestore

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/mikkovaltonen/mrp-pipeline/internal/application/dto"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/repository"
	"github.com/mikkovaltonen/mrp-pipeline/pkg/logger"
)

const (
	signInURL   = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"
	documentURL = "https://firestore.googleapis.com/v1/projects/%s/databases/(default)/documents/%s/%s"
)

var _ repository.ProjectionSink = (*Sink)(nil)

// Config credentials and target collection for the Firestore REST sink.
type Config struct {
	APIKey     string
	ProjectID  string
	Email      string
	Password   string
	Collection string
}

// Sink upserts one Firestore document per substrate family through the REST
// API. Authentication is a plain email/password sign-in against the Identity
// Toolkit; the pipeline runs as a regular Firebase user, not a service
// account.
type Sink struct {
	cfg  Config
	http *resty.Client
	log  *logger.Logger
}

func NewSink(cfg Config, log *logger.Logger) *Sink {
	return &Sink{cfg: cfg, http: resty.New(), log: log}
}

func (s *Sink) Name() string { return "firestore" }

// Store signs in and PATCHes every family document. PATCH creates or updates,
// so no delete pass is needed between runs.
func (s *Sink) Store(ctx context.Context, snap repository.Snapshot) error {
	token, err := s.signIn(ctx)
	if err != nil {
		return fmt.Errorf("firestore sign-in: %w", err)
	}

	written := 0
	for _, kw := range snap.Keywords {
		doc := dto.FromFamilyGroup(snap.Groups[kw])
		if err := s.upsert(ctx, token, kw, doc); err != nil {
			return fmt.Errorf("upload family %q: %w", kw, err)
		}
		written++
		if written%100 == 0 {
			s.log.Info().Int("written", written).Int("total", len(snap.Keywords)).Msg("uploading family documents")
		}
	}
	s.log.Info().Int("documents", written).Str("collection", s.cfg.Collection).Msg("firestore upload complete")
	return nil
}

func (s *Sink) signIn(ctx context.Context) (string, error) {
	var out struct {
		IDToken string `json:"idToken"`
	}
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("key", s.cfg.APIKey).
		SetBody(map[string]any{
			"email":             s.cfg.Email,
			"password":          s.cfg.Password,
			"returnSecureToken": true,
		}).
		SetResult(&out).
		Post(signInURL)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("identity toolkit returned %s", resp.Status())
	}
	if out.IDToken == "" {
		return "", fmt.Errorf("identity toolkit returned no token")
	}
	return out.IDToken, nil
}

func (s *Sink) upsert(ctx context.Context, token, keyword string, doc dto.FamilyGroupDTO) error {
	fields, err := toFields(doc)
	if err != nil {
		return err
	}

	url := fmt.Sprintf(documentURL, s.cfg.ProjectID, s.cfg.Collection, documentID(keyword))
	resp, err := s.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(map[string]any{"fields": fields}).
		Patch(url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("firestore returned %s: %s", resp.Status(), resp.String())
	}
	return nil
}

// documentID sanitizes a keyword for use as a Firestore document id.
func documentID(keyword string) string {
	id := strings.ReplaceAll(keyword, "/", "_")
	return strings.ReplaceAll(id, " ", "_")
}

// toFields converts a document to the Firestore typed-value wire format,
// going through JSON so the conversion sees only plain maps, slices and
// scalars.
func toFields(doc any) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}

	fields := make(map[string]any, len(m))
	for k, v := range m {
		fields[k] = toValue(v)
	}
	return fields, nil
}

func toValue(v any) map[string]any {
	switch t := v.(type) {
	case nil:
		return map[string]any{"nullValue": nil}
	case bool:
		return map[string]any{"booleanValue": t}
	case float64:
		// JSON numbers arrive as float64; keep integral values as integers,
		// matching what the dashboard expects for counts.
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return map[string]any{"integerValue": strconv.FormatInt(int64(t), 10)}
		}
		return map[string]any{"doubleValue": t}
	case string:
		return map[string]any{"stringValue": t}
	case []any:
		values := make([]map[string]any, len(t))
		for i, item := range t {
			values[i] = toValue(item)
		}
		return map[string]any{"arrayValue": map[string]any{"values": values}}
	case map[string]any:
		fields := make(map[string]any, len(t))
		for k, item := range t {
			fields[k] = toValue(item)
		}
		return map[string]any{"mapValue": map[string]any{"fields": fields}}
	default:
		return map[string]any{"stringValue": fmt.Sprint(t)}
	}
}

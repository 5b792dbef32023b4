package service

import (
	"context"
	"fmt"
	"time"

	"github.com/smbsocial/postpilot/internal/models"
	"github.com/smbsocial/postpilot/internal/platform"
	"github.com/smbsocial/postpilot/internal/repository"
	"github.com/smbsocial/postpilot/internal/transfer"
)

type fakePostRepo struct {
	posts map[int64]*models.Post
	order []int64
	next  int64
}

func newFakePostRepo(posts ...*models.Post) *fakePostRepo {
	r := &fakePostRepo{posts: make(map[int64]*models.Post)}
	for _, p := range posts {
		r.add(p)
	}
	return r
}

func (r *fakePostRepo) add(p *models.Post) {
	if p.ID == 0 {
		r.next++
		p.ID = r.next
	} else if p.ID > r.next {
		r.next = p.ID
	}
	r.posts[p.ID] = p
	r.order = append(r.order, p.ID)
}

func (r *fakePostRepo) GetByID(_ context.Context, id int64) (*models.Post, error) {
	return r.posts[id], nil
}

func (r *fakePostRepo) Create(_ context.Context, post *models.Post) (int64, error) {
	r.add(post)
	return post.ID, nil
}

func (r *fakePostRepo) ListByClient(_ context.Context, clientID int64, status string) ([]*models.Post, error) {
	var out []*models.Post
	for _, id := range r.order {
		p := r.posts[id]
		if p.ClientID == clientID && (status == "" || p.Status == status) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) ListDrafts(_ context.Context, clientID int64, from, to time.Time) ([]*models.Post, error) {
	var out []*models.Post
	for _, id := range r.order {
		p := r.posts[id]
		if p.ClientID == clientID && p.Status == models.PostStatusDraft &&
			!p.ScheduledAt.Before(from) && p.ScheduledAt.Before(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) ListPendingDue(_ context.Context, now time.Time) ([]*models.Post, error) {
	var out []*models.Post
	for _, id := range r.order {
		p := r.posts[id]
		if p.Status == models.PostStatusPending && !p.ScheduledAt.After(now) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) ListClientIDsWithDrafts(_ context.Context, from, to time.Time) ([]int64, error) {
	seen := make(map[int64]bool)
	var out []int64
	for _, id := range r.order {
		p := r.posts[id]
		if p.Status == models.PostStatusDraft && !p.ScheduledAt.Before(from) && p.ScheduledAt.Before(to) && !seen[p.ClientID] {
			seen[p.ClientID] = true
			out = append(out, p.ClientID)
		}
	}
	return out, nil
}

func (r *fakePostRepo) ListScheduledBetween(_ context.Context, clientID int64, from, to time.Time) ([]*models.Post, error) {
	var out []*models.Post
	for _, id := range r.order {
		p := r.posts[id]
		if p.ClientID == clientID && !p.ScheduledAt.Before(from) && p.ScheduledAt.Before(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) ApplyReview(_ context.Context, postID int64, score float64, rewritten bool, newText string) error {
	p, ok := r.posts[postID]
	if !ok || p.Status != models.PostStatusDraft {
		return repository.ErrNoTransition
	}
	p.Status = models.PostStatusPending
	p.QAScore.Float64 = score
	p.QAScore.Valid = true
	p.QARewritten = rewritten
	if rewritten {
		p.PostText = newText
	}
	return nil
}

func (r *fakePostRepo) MarkPosted(_ context.Context, postID int64, externalID string) error {
	p, ok := r.posts[postID]
	if !ok || p.Status != models.PostStatusPending {
		return repository.ErrNoTransition
	}
	p.Status = models.PostStatusPosted
	p.ExternalPostID = externalID
	p.ErrorMessage = ""
	return nil
}

func (r *fakePostRepo) MarkFailed(_ context.Context, postID int64, errorMessage string) error {
	p, ok := r.posts[postID]
	if !ok || p.Status != models.PostStatusPending {
		return repository.ErrNoTransition
	}
	p.Status = models.PostStatusFailed
	p.ErrorMessage = errorMessage
	p.ExternalPostID = ""
	return nil
}

func (r *fakePostRepo) ResetFailed(_ context.Context, postID int64) error {
	p, ok := r.posts[postID]
	if !ok || p.Status != models.PostStatusFailed {
		return repository.ErrNoTransition
	}
	p.Status = models.PostStatusPending
	p.ErrorMessage = ""
	return nil
}

type fakeClientRepo struct {
	clients map[int64]*models.Client
}

func (r *fakeClientRepo) GetByID(_ context.Context, id int64) (*models.Client, error) {
	return r.clients[id], nil
}

type fakeQALogRepo struct {
	entries []*models.QALog
}

func (r *fakeQALogRepo) Create(_ context.Context, entry *models.QALog) (int64, error) {
	r.entries = append(r.entries, entry)
	return int64(len(r.entries)), nil
}

func (r *fakeQALogRepo) ListByPostID(_ context.Context, postID int64) ([]*models.QALog, error) {
	var out []*models.QALog
	for _, e := range r.entries {
		if e.PostID == postID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeConnectionRepo struct {
	connections map[string]*models.SocialConnection
}

func connectionKey(clientID int64, platformName string) string {
	return fmt.Sprintf("%d/%s", clientID, platformName)
}

func (r *fakeConnectionRepo) Get(_ context.Context, clientID int64, platformName string) (*models.SocialConnection, error) {
	return r.connections[connectionKey(clientID, platformName)], nil
}

func (r *fakeConnectionRepo) ListByClient(_ context.Context, clientID int64) ([]*models.SocialConnection, error) {
	var out []*models.SocialConnection
	for _, c := range r.connections {
		if c.ClientID == clientID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeConnectionRepo) Upsert(_ context.Context, sc *models.SocialConnection) (int64, error) {
	r.connections[connectionKey(sc.ClientID, sc.Platform)] = sc
	return sc.ID, nil
}

type fakePublicationRepo struct {
	records []*models.Publication
}

func (r *fakePublicationRepo) Create(_ context.Context, p *models.Publication) (int64, error) {
	r.records = append(r.records, p)
	return int64(len(r.records)), nil
}

func (r *fakePublicationRepo) ListByClientBetween(_ context.Context, clientID int64, from, to time.Time) ([]*models.Publication, error) {
	var out []*models.Publication
	for _, p := range r.records {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeScorer struct {
	score func(req *transfer.ScoringRequest) (*transfer.QAVerdict, error)
	calls int
}

func (s *fakeScorer) Score(_ context.Context, req *transfer.ScoringRequest) (*transfer.QAVerdict, error) {
	s.calls++
	return s.score(req)
}

type fakeAdapter struct {
	publish func(post *models.Post, cred platform.Credential) (string, error)
	calls   int
}

func (a *fakeAdapter) Publish(_ context.Context, post *models.Post, cred platform.Credential) (string, error) {
	a.calls++
	return a.publish(post, cred)
}

type fakeRegistry struct {
	adapters map[string]platform.Adapter
}

func (r *fakeRegistry) ForPlatform(name string) (platform.Adapter, bool) {
	adapter, ok := r.adapters[name]
	return adapter, ok
}

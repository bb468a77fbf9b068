package facade

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anonto42/snapgram/backend/internal/errs"
	"github.com/anonto42/snapgram/backend/internal/models"
)

// In-memory provider fakes. They honor the same ordering and error-kind
// contracts as the real providers so the facade tests exercise the compound
// sequences without a network.

type fakeAccounts struct {
	accounts map[string]*models.Account // keyed by email
	sessions map[string]string          // token -> account ID
	nextTok  int
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		accounts: map[string]*models.Account{},
		sessions: map[string]string{},
	}
}

func (s *fakeAccounts) CreateAccount(_ context.Context, email, password, name string) (*models.Account, error) {
	if _, ok := s.accounts[email]; ok {
		return nil, errs.Errorf("fake.CreateAccount", errs.KindConflict, "account exists")
	}
	account := &models.Account{
		ID:       fmt.Sprintf("acct-%d", len(s.accounts)+1),
		Email:    email,
		Name:     name,
		Password: password,
	}
	s.accounts[email] = account
	return account, nil
}

func (s *fakeAccounts) CreateSession(_ context.Context, email, password string) (string, *models.Session, error) {
	account, ok := s.accounts[email]
	if !ok || account.Password != password {
		return "", nil, errs.Errorf("fake.CreateSession", errs.KindUnauthorized, "invalid credentials")
	}
	s.nextTok++
	token := fmt.Sprintf("tok-%d", s.nextTok)
	s.sessions[token] = account.ID
	return token, &models.Session{ID: token, AccountID: account.ID, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (s *fakeAccounts) AccountForSession(_ context.Context, token string) (*models.Account, error) {
	accountID, ok := s.sessions[token]
	if !ok {
		return nil, errs.Errorf("fake.AccountForSession", errs.KindUnauthorized, "session revoked")
	}
	for _, account := range s.accounts {
		if account.ID == accountID {
			return account, nil
		}
	}
	return nil, errs.Errorf("fake.AccountForSession", errs.KindNotFound, "account not found")
}

func (s *fakeAccounts) VerifySession(_ context.Context, token string) (*models.JwtCustomClaims, error) {
	accountID, ok := s.sessions[token]
	if !ok {
		return nil, errs.Errorf("fake.VerifySession", errs.KindUnauthorized, "session revoked")
	}
	return &models.JwtCustomClaims{AccountID: accountID}, nil
}

func (s *fakeAccounts) DeleteSession(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

type fakeUserRepo struct {
	profiles   map[string]*models.UserProfile // keyed by hex ID
	failCreate bool
	failUpdate bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{profiles: map[string]*models.UserProfile{}}
}

func (r *fakeUserRepo) CreateProfile(_ context.Context, profile *models.UserProfile) error {
	if r.failCreate {
		return errs.Errorf("fake.CreateProfile", errs.KindTransient, "write rejected")
	}
	profile.ID = primitive.NewObjectID()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	cp := *profile
	r.profiles[profile.ID.Hex()] = &cp
	return nil
}

func (r *fakeUserRepo) GetProfileByID(_ context.Context, id string) (*models.UserProfile, error) {
	profile, ok := r.profiles[id]
	if !ok {
		return nil, errs.Errorf("fake.GetProfileByID", errs.KindNotFound, "profile %s not found", id)
	}
	cp := *profile
	return &cp, nil
}

func (r *fakeUserRepo) GetProfileByAccountID(_ context.Context, accountID string) (*models.UserProfile, error) {
	for _, profile := range r.profiles {
		if profile.AccountID == accountID {
			cp := *profile
			return &cp, nil
		}
	}
	return nil, errs.Errorf("fake.GetProfileByAccountID", errs.KindNotFound, "no profile for account %s", accountID)
}

func (r *fakeUserRepo) GetProfiles(_ context.Context, limit int64) ([]models.UserProfile, error) {
	out := []models.UserProfile{}
	for _, profile := range r.profiles {
		out = append(out, *profile)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id string, profile *models.UserProfile) error {
	if r.failUpdate {
		return errs.Errorf("fake.UpdateProfile", errs.KindTransient, "write rejected")
	}
	existing, ok := r.profiles[id]
	if !ok {
		return errs.Errorf("fake.UpdateProfile", errs.KindNotFound, "profile %s not found", id)
	}
	existing.Name = profile.Name
	existing.Username = profile.Username
	existing.Bio = profile.Bio
	existing.ImageURL = profile.ImageURL
	existing.ImageID = profile.ImageID
	existing.UpdatedAt = time.Now()
	return nil
}

type fakePostRepo struct {
	posts      map[string]*models.Post
	failCreate bool
	failUpdate bool
	clock      time.Time
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[string]*models.Post{}, clock: time.Now()}
}

// tick hands out strictly increasing timestamps so ordering is deterministic.
func (r *fakePostRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	if r.failCreate {
		return errs.Errorf("fake.CreatePost", errs.KindTransient, "write rejected")
	}
	post.ID = primitive.NewObjectID()
	post.CreatedAt = r.tick()
	post.UpdatedAt = post.CreatedAt
	cp := *post
	r.posts[post.ID.Hex()] = &cp
	return nil
}

func (r *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, errs.Errorf("fake.GetPostByID", errs.KindNotFound, "post %s not found", id)
	}
	cp := *post
	return &cp, nil
}

func (r *fakePostRepo) sortedByUpdate() []models.Post {
	out := []models.Post{}
	for _, post := range r.posts {
		out = append(out, *post)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out
}

func (r *fakePostRepo) GetRecentPosts(_ context.Context, limit int64) ([]models.Post, error) {
	out := []models.Post{}
	for _, post := range r.posts {
		out = append(out, *post)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePostRepo) GetInfinitePosts(_ context.Context, cursor string, limit int64) ([]models.Post, error) {
	ordered := r.sortedByUpdate()
	start := 0
	if cursor != "" {
		found := false
		for i, post := range ordered {
			if post.ID.Hex() == cursor {
				start = i + 1
				found = true
				break
			}
		}
		if !found {
			return nil, errs.Errorf("fake.GetInfinitePosts", errs.KindNotFound, "post %s not found", cursor)
		}
	}
	end := start + int(limit)
	if end > len(ordered) {
		end = len(ordered)
	}
	return ordered[start:end], nil
}

func (r *fakePostRepo) SearchPosts(_ context.Context, term string) ([]models.Post, error) {
	out := []models.Post{}
	for _, post := range r.posts {
		if term != "" && containsFold(post.Caption, term) {
			out = append(out, *post)
		}
	}
	return out, nil
}

func (r *fakePostRepo) GetPostsByCreator(_ context.Context, creatorID string) ([]models.Post, error) {
	out := []models.Post{}
	for _, post := range r.posts {
		if post.CreatorID == creatorID {
			out = append(out, *post)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakePostRepo) UpdatePost(_ context.Context, id string, post *models.Post) error {
	if r.failUpdate {
		return errs.Errorf("fake.UpdatePost", errs.KindTransient, "write rejected")
	}
	existing, ok := r.posts[id]
	if !ok {
		return errs.Errorf("fake.UpdatePost", errs.KindNotFound, "post %s not found", id)
	}
	existing.Caption = post.Caption
	existing.ImageURL = post.ImageURL
	existing.ImageID = post.ImageID
	existing.Location = post.Location
	existing.Tags = post.Tags
	existing.UpdatedAt = r.tick()
	return nil
}

func (r *fakePostRepo) SetLikes(_ context.Context, id string, likes []string) (*models.Post, error) {
	existing, ok := r.posts[id]
	if !ok {
		return nil, errs.Errorf("fake.SetLikes", errs.KindNotFound, "post %s not found", id)
	}
	if likes == nil {
		likes = []string{}
	}
	existing.Likes = likes
	existing.UpdatedAt = r.tick()
	cp := *existing
	return &cp, nil
}

func (r *fakePostRepo) AddLike(_ context.Context, id, userID string) (*models.Post, error) {
	existing, ok := r.posts[id]
	if !ok {
		return nil, errs.Errorf("fake.AddLike", errs.KindNotFound, "post %s not found", id)
	}
	for _, liker := range existing.Likes {
		if liker == userID {
			cp := *existing
			return &cp, nil
		}
	}
	existing.Likes = append(existing.Likes, userID)
	existing.UpdatedAt = r.tick()
	cp := *existing
	return &cp, nil
}

func (r *fakePostRepo) RemoveLike(_ context.Context, id, userID string) (*models.Post, error) {
	existing, ok := r.posts[id]
	if !ok {
		return nil, errs.Errorf("fake.RemoveLike", errs.KindNotFound, "post %s not found", id)
	}
	likes := []string{}
	for _, liker := range existing.Likes {
		if liker != userID {
			likes = append(likes, liker)
		}
	}
	existing.Likes = likes
	existing.UpdatedAt = r.tick()
	cp := *existing
	return &cp, nil
}

func (r *fakePostRepo) DeletePost(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return errs.Errorf("fake.DeletePost", errs.KindNotFound, "post %s not found", id)
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) EnsureIndexes(_ context.Context) error { return nil }

type fakeSavedRepo struct {
	records map[string]*models.SavedPost
}

func newFakeSavedRepo() *fakeSavedRepo {
	return &fakeSavedRepo{records: map[string]*models.SavedPost{}}
}

func (r *fakeSavedRepo) CreateSavedPost(_ context.Context, saved *models.SavedPost) error {
	saved.ID = primitive.NewObjectID()
	saved.CreatedAt = time.Now()
	cp := *saved
	r.records[saved.ID.Hex()] = &cp
	return nil
}

func (r *fakeSavedRepo) DeleteSavedPost(_ context.Context, recordID string) error {
	if _, ok := r.records[recordID]; !ok {
		return errs.Errorf("fake.DeleteSavedPost", errs.KindNotFound, "saved post %s not found", recordID)
	}
	delete(r.records, recordID)
	return nil
}

func (r *fakeSavedRepo) GetSavedPostsByUser(_ context.Context, userID string) ([]models.SavedPost, error) {
	out := []models.SavedPost{}
	for _, saved := range r.records {
		if saved.UserID == userID {
			out = append(out, *saved)
		}
	}
	return out, nil
}

type fakeBlobStore struct {
	files       map[string][]byte
	deleted     []string
	failPreview bool
	failDelete  bool
	failUpload  bool
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{files: map[string][]byte{}}
}

func (s *fakeBlobStore) Upload(_ context.Context, id string, data []byte, _ string) (*models.StoredFile, error) {
	if s.failUpload {
		return nil, errs.Errorf("fake.Upload", errs.KindTransient, "upload rejected")
	}
	s.files[id] = data
	return &models.StoredFile{ID: id, Size: int64(len(data)), CreatedAt: time.Now()}, nil
}

func (s *fakeBlobStore) PreviewURL(fileID string) (string, error) {
	if s.failPreview {
		return "", errors.New("preview service unavailable")
	}
	if fileID == "" {
		return "", errs.Errorf("fake.PreviewURL", errs.KindValidation, "file id is required")
	}
	return "https://cdn.test/files/" + fileID + "/preview", nil
}

func (s *fakeBlobStore) Delete(_ context.Context, fileID string) error {
	if s.failDelete {
		return errs.Errorf("fake.Delete", errs.KindTransient, "delete rejected")
	}
	delete(s.files, fileID)
	s.deleted = append(s.deleted, fileID)
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// newTestFacade builds a facade over fresh fakes.
func newTestFacade() (*Facade, *fakeAccounts, *fakeUserRepo, *fakePostRepo, *fakeSavedRepo, *fakeBlobStore) {
	accountsSvc := newFakeAccounts()
	users := newFakeUserRepo()
	posts := newFakePostRepo()
	saved := newFakeSavedRepo()
	blobs := newFakeBlobStore()
	f := New(accountsSvc, users, posts, saved, blobs, "https://avatars.test/api")
	return f, accountsSvc, users, posts, saved, blobs
}

// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"scrimhub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// games and roles the generated profiles, posts and vacancies draw from.
var (
	seedGames = []string{"cs2", "valorant", "lol", "dota2", "overwatch2", "rocketleague", "apex"}

	seedRoles = map[string][]string{
		"cs2":          {"entry", "awp", "igl", "support", "lurker"},
		"valorant":     {"duelist", "controller", "initiator", "sentinel", "igl"},
		"lol":          {"top", "jungle", "mid", "adc", "support"},
		"dota2":        {"carry", "mid", "offlane", "soft support", "hard support"},
		"overwatch2":   {"tank", "dps", "support"},
		"rocketleague": {"striker", "midfield", "defender"},
		"apex":         {"fragger", "anchor", "igl"},
	}

	seedRegions = []string{"EU", "NA", "SA", "APAC", "MENA"}
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rng: rng, nextID: 1000}
}

func (f *Factory) pickGame() string {
	return seedGames[f.rng.Intn(len(seedGames))]
}

func (f *Factory) pickRole(game string) string {
	roles := seedRoles[game]
	if len(roles) == 0 {
		return "flex"
	}
	return roles[f.rng.Intn(len(roles))]
}

// spreadCreatedAt returns a timestamp up to MaxDays in the past so seeded
// feeds do not look like they were written in one burst.
func (f *Factory) spreadCreatedAt() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	game := f.pickGame()
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Nickname: gofakeit.Gamertag(),
		MainGame: game,
		Role:     f.pickRole(game),
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "Password123!"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s (%s/%s)", user.Username, user.MainGame, user.Role)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post struct without persisting it. Useful for
// batching.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	game := user.MainGame
	if game == "" {
		game = f.pickGame()
	}

	templates := []string{
		"LF%d more for %s scrims tonight, %s region. DM me.",
		"Just hit a new rank in %[2]s. The grind continues.",
		"Anyone else think the latest %[2]s patch killed the meta?",
		"Reviewing our last %[2]s match VOD. So many throws on my part.",
		"Looking for a %[2]s team, can play most evenings %[3]s time.",
	}
	template := templates[f.rng.Intn(len(templates))]

	post := &models.Post{
		Content:   fmt.Sprintf(template, f.rng.Intn(3)+1, game, seedRegions[f.rng.Intn(len(seedRegions))]),
		UserID:    user.ID,
		CreatedAt: f.spreadCreatedAt(),
	}
	if f.rng.Float32() < 0.3 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/450", gofakeit.UUID())
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost constructs and persists a sample `models.Post` for the user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(user, overrides...)

	if f.opts.DryRun {
		f.nextID++
		post.ID = f.nextID
		log.Printf("[dry-run] CreatePost: user=%d content=%q", post.UserID, post.Content)
		return post, nil
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePostsBatch persists multiple posts in a single DB call when possible.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	if f.opts.DryRun {
		for _, p := range posts {
			f.nextID++
			p.ID = f.nextID
		}
		log.Printf("[dry-run] CreatePostsBatch: %d posts (no DB write)", len(posts))
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided post authored by the provided user.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(8),
		UserID:  user.ID,
		PostID:  post.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateReply persists a reply under the comment, optionally nested under
// parent.
func (f *Factory) CreateReply(user *models.User, comment *models.Comment, parent *models.Reply) (*models.Reply, error) {
	reply := &models.Reply{
		CommentID: comment.ID,
		UserID:    user.ID,
		Content:   gofakeit.Sentence(6),
	}
	if parent != nil {
		reply.ParentReplyID = &parent.ID
	}

	if err := f.db.Create(reply).Error; err != nil {
		return nil, err
	}
	return reply, nil
}

// CreatePostLike persists a like from `user` on `post`.
func (f *Factory) CreatePostLike(user *models.User, post *models.Post) error {
	like := &models.Like{
		UserID: user.ID,
		PostID: post.ID,
	}
	return f.db.Create(like).Error
}

// CreateOrg constructs and persists an organization owned by the user.
func (f *Factory) CreateOrg(owner *models.User, overrides ...func(*models.Organization)) (*models.Organization, error) {
	name := fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), gofakeit.NounCollectiveAnimal())
	org := &models.Organization{
		OwnerID:     owner.ID,
		Name:        name + " " + fmt.Sprintf("%d", gofakeit.Number(10, 99)),
		Tag:         fmt.Sprintf("%s%d", gofakeit.LetterN(3), gofakeit.Number(1, 9)),
		Region:      seedRegions[f.rng.Intn(len(seedRegions))],
		Description: gofakeit.Sentence(12),
		Logo:        fmt.Sprintf("https://i.pravatar.cc/150?u=org-%s", gofakeit.UUID()),
	}

	for _, override := range overrides {
		override(org)
	}

	if f.opts.DryRun {
		f.nextID++
		org.ID = f.nextID
		log.Printf("[dry-run] CreateOrg: %s [%s]", org.Name, org.Tag)
		return org, nil
	}

	if err := f.db.Create(org).Error; err != nil {
		return nil, err
	}
	return org, nil
}

// CreateVacancy persists an open vacancy for the organization.
func (f *Factory) CreateVacancy(org *models.Organization, overrides ...func(*models.Vacancy)) (*models.Vacancy, error) {
	game := f.pickGame()
	role := f.pickRole(game)
	vacancy := &models.Vacancy{
		OrgID:        org.ID,
		Title:        fmt.Sprintf("%s %s wanted", game, role),
		Game:         game,
		Role:         role,
		Description:  gofakeit.Paragraph(1, 2, 8, "\n"),
		Requirements: gofakeit.Sentence(10),
		Status:       models.VacancyOpen,
	}

	for _, override := range overrides {
		override(vacancy)
	}

	if err := f.db.Create(vacancy).Error; err != nil {
		return nil, err
	}
	return vacancy, nil
}

// CreateConversation persists a DM thread between the two users.
func (f *Factory) CreateConversation(a, b *models.User) (*models.Conversation, error) {
	conv := &models.Conversation{
		CreatedBy:    a.ID,
		Participants: []models.User{*a, *b},
	}
	if err := f.db.Create(conv).Error; err != nil {
		return nil, err
	}
	return conv, nil
}

// CreateMessage persists a sample message in the conversation from the sender.
func (f *Factory) CreateMessage(conversation *models.Conversation, sender *models.User, overrides ...func(*models.Message)) (*models.Message, error) {
	message := &models.Message{
		ConversationID: conversation.ID,
		SenderID:       sender.ID,
		Content:        gofakeit.Sentence(10),
	}

	for _, override := range overrides {
		override(message)
	}

	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"scrimhub/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	NumOrgs     int
	ShouldClean bool

	// MaxDays spreads generated created_at timestamps over this many days.
	MaxDays int
	// SkipBcrypt stores plaintext passwords. Dev fast mode only.
	SkipBcrypt bool
	// DryRun logs what would be created without touching the database.
	DryRun bool
}

// Seed populates the database with demo data: users, orgs with open
// vacancies, a post feed with comment threads and likes, and a few DM
// conversations.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database: %d users, %d orgs, %d posts", opts.NumUsers, opts.NumOrgs, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway")
		}
	}

	f := NewFactory(db, opts)
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	orgs, err := createOrgs(f, users, opts.NumOrgs, r)
	if err != nil {
		return fmt.Errorf("failed to create orgs: %w", err)
	}
	log.Printf("created %d orgs", len(orgs))

	posts, err := createPosts(f, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	if !opts.DryRun {
		if err := createDiscussions(f, users, posts, r); err != nil {
			return fmt.Errorf("failed to create discussions: %w", err)
		}
		if err := createConversations(f, users, r); err != nil {
			return fmt.Errorf("failed to create conversations: %w", err)
		}
	}

	log.Println("Database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE notifications, likes, replies, comments, posts,
		vacancy_applications, vacancies, organizations,
		messages, conversation_participants, conversations,
		image_variants, images, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// A couple of fixed logins for local development.
	for _, name := range []string{"demo", "scout"} {
		if len(users) >= count {
			break
		}
		name := name
		user, err := f.CreateUser(func(u *models.User) {
			u.Username = name
			u.Email = fmt.Sprintf("%s@example.com", name)
		})
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	for i := len(users); i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			log.Printf("failed to create user: %v", err)
			continue
		}
		users = append(users, user)
		if i > 0 && i%100 == 0 {
			log.Printf("created %d users...", i)
		}
	}
	return users, nil
}

func createOrgs(f *Factory, users []*models.User, count int, r *rand.Rand) ([]*models.Organization, error) {
	if len(users) == 0 || count == 0 {
		return nil, nil
	}
	orgs := make([]*models.Organization, 0, count)
	for i := 0; i < count; i++ {
		owner := users[r.Intn(len(users))]
		org, err := f.CreateOrg(owner)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, org)

		if f.opts.DryRun {
			continue
		}
		for v := 0; v < r.Intn(3)+1; v++ {
			if _, err := f.CreateVacancy(org); err != nil {
				return nil, err
			}
		}
	}
	return orgs, nil
}

func createPosts(f *Factory, users []*models.User, count int) ([]*models.Post, error) {
	if len(users) == 0 || count == 0 {
		return nil, nil
	}
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		user := users[f.rng.Intn(len(users))]
		posts = append(posts, f.BuildPost(user))
	}
	if err := f.CreatePostsBatch(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// createDiscussions attaches comment threads with nested replies and likes
// to roughly half the feed.
func createDiscussions(f *Factory, users []*models.User, posts []*models.Post, r *rand.Rand) error {
	for _, post := range posts {
		if r.Float32() < 0.5 {
			continue
		}

		for c := 0; c < r.Intn(3)+1; c++ {
			commenter := users[r.Intn(len(users))]
			comment, err := f.CreateComment(commenter, post)
			if err != nil {
				return err
			}

			var parent *models.Reply
			for d := 0; d < r.Intn(3); d++ {
				replier := users[r.Intn(len(users))]
				reply, err := f.CreateReply(replier, comment, parent)
				if err != nil {
					return err
				}
				// every other reply nests one level deeper
				if d%2 == 0 {
					parent = reply
				}
			}
		}

		likers := r.Intn(len(users)/2 + 1)
		seen := map[uint]bool{}
		for l := 0; l < likers; l++ {
			user := users[r.Intn(len(users))]
			if seen[user.ID] {
				continue
			}
			seen[user.ID] = true
			if err := f.CreatePostLike(user, post); err != nil {
				return err
			}
		}
	}
	return nil
}

func createConversations(f *Factory, users []*models.User, r *rand.Rand) error {
	if len(users) < 2 {
		return nil
	}
	pairs := len(users) / 2
	if pairs > 10 {
		pairs = 10
	}
	for i := 0; i < pairs; i++ {
		a := users[r.Intn(len(users))]
		b := users[r.Intn(len(users))]
		if a.ID == b.ID {
			continue
		}
		conv, err := f.CreateConversation(a, b)
		if err != nil {
			return err
		}
		for m := 0; m < r.Intn(5)+1; m++ {
			sender := a
			if m%2 == 1 {
				sender = b
			}
			if _, err := f.CreateMessage(conv, sender); err != nil {
				return err
			}
		}
	}
	return nil
}

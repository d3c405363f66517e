package seed

import (
	"errors"
	"fmt"
	"os"

	"scrimhub/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Preset is a declarative seed fixture. Presets are idempotent: users are
// keyed by username, orgs by name, so re-applying updates instead of
// duplicating.
type Preset struct {
	Users []PresetUser `yaml:"users"`
	Orgs  []PresetOrg  `yaml:"orgs"`
	Posts []PresetPost `yaml:"posts"`
}

type PresetUser struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Nickname string `yaml:"nickname"`
	MainGame string `yaml:"main_game"`
	Role     string `yaml:"role"`
	Bio      string `yaml:"bio"`
	IsAdmin  bool   `yaml:"is_admin"`
}

type PresetOrg struct {
	Name        string          `yaml:"name"`
	Tag         string          `yaml:"tag"`
	Region      string          `yaml:"region"`
	Description string          `yaml:"description"`
	Owner       string          `yaml:"owner"` // username
	Vacancies   []PresetVacancy `yaml:"vacancies"`
}

type PresetVacancy struct {
	Title        string `yaml:"title"`
	Game         string `yaml:"game"`
	Role         string `yaml:"role"`
	Requirements string `yaml:"requirements"`
	Status       string `yaml:"status"`
}

type PresetPost struct {
	Author  string `yaml:"author"` // username
	Content string `yaml:"content"`
}

// LoadPreset reads and parses a YAML preset file.
func LoadPreset(path string) (*Preset, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	return ParsePreset(raw)
}

// ParsePreset parses YAML preset bytes.
func ParsePreset(raw []byte) (*Preset, error) {
	var preset Preset
	if err := yaml.Unmarshal(raw, &preset); err != nil {
		return nil, fmt.Errorf("parse preset: %w", err)
	}
	return &preset, nil
}

// Apply upserts the preset's users, orgs and posts into the database.
func (p *Preset) Apply(db *gorm.DB) error {
	usersByName := make(map[string]*models.User, len(p.Users))

	for _, pu := range p.Users {
		if pu.Username == "" {
			return fmt.Errorf("preset user without username")
		}
		password := pu.Password
		if password == "" {
			password = "Password123!"
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := models.User{
			Username: pu.Username,
			Email:    pu.Email,
			Password: string(hashed),
			Nickname: pu.Nickname,
			MainGame: pu.MainGame,
			Role:     pu.Role,
			Bio:      pu.Bio,
			IsAdmin:  pu.IsAdmin,
		}
		if user.Email == "" {
			user.Email = fmt.Sprintf("%s@example.com", pu.Username)
		}

		err = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"nickname", "main_game", "role", "bio", "is_admin", "updated_at"}),
		}).Create(&user).Error
		if err != nil {
			return fmt.Errorf("preset user %s: %w", pu.Username, err)
		}
		if user.ID == 0 {
			if err := db.Where("username = ?", pu.Username).First(&user).Error; err != nil {
				return err
			}
		}
		usersByName[pu.Username] = &user
	}

	for _, po := range p.Orgs {
		owner, ok := usersByName[po.Owner]
		if !ok {
			return fmt.Errorf("preset org %s references unknown owner %q", po.Name, po.Owner)
		}

		org := models.Organization{
			OwnerID:     owner.ID,
			Name:        po.Name,
			Tag:         po.Tag,
			Region:      po.Region,
			Description: po.Description,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"tag", "region", "description", "updated_at"}),
		}).Create(&org).Error
		if err != nil {
			return fmt.Errorf("preset org %s: %w", po.Name, err)
		}
		if org.ID == 0 {
			if err := db.Where("name = ?", po.Name).First(&org).Error; err != nil {
				return err
			}
		}

		for _, pv := range po.Vacancies {
			status := pv.Status
			if status == "" {
				status = models.VacancyOpen
			}
			vacancy := models.Vacancy{
				OrgID:        org.ID,
				Title:        pv.Title,
				Game:         pv.Game,
				Role:         pv.Role,
				Requirements: pv.Requirements,
				Status:       status,
			}
			var existing models.Vacancy
			err := db.Where("org_id = ? AND title = ?", org.ID, pv.Title).First(&existing).Error
			switch {
			case err == nil:
				continue
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
			if err := db.Create(&vacancy).Error; err != nil {
				return fmt.Errorf("preset vacancy %s: %w", pv.Title, err)
			}
		}
	}

	for _, pp := range p.Posts {
		author, ok := usersByName[pp.Author]
		if !ok {
			return fmt.Errorf("preset post references unknown author %q", pp.Author)
		}
		var existing models.Post
		err := db.Where("user_id = ? AND content = ?", author.ID, pp.Content).First(&existing).Error
		switch {
		case err == nil:
			continue
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		post := models.Post{UserID: author.ID, Content: pp.Content}
		if err := db.Create(&post).Error; err != nil {
			return fmt.Errorf("preset post by %s: %w", pp.Author, err)
		}
	}

	return nil
}

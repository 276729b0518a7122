package inmemdb

import (
	"context"

	"github.com/shulehq/shule/core/user"
	"github.com/shulehq/shule/services/metrics"
)

type userRepository struct {
	db *Store
}

func NewUserRepository(db *Store) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckUsernameUniqueness(ctx context.Context, username string, excludedUsers ...user.User) error {
	if err := repo.db.delay(ctx); err != nil {
		return err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, usr := range repo.db.users {
		if usr.Username == username && !isExcluded(usr, excludedUsers) {
			return user.ErrUsernameExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	if err := repo.db.delay(ctx); err != nil {
		return user.User{}, err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	metrics.StoreOps.WithLabelValues("create_user").Inc()

	usr.ID = repo.db.newID()
	repo.db.users = append(repo.db.users, usr)
	return usr, nil
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	if err := repo.db.delay(ctx); err != nil {
		return nil, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	metrics.StoreOps.WithLabelValues("query_all_users").Inc()

	users := make([]user.User, len(repo.db.users))
	copy(users, repo.db.users)
	return users, nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	if err := repo.db.delay(ctx); err != nil {
		return user.User{}, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if usr, ok := repo.db.findUser(id); ok {
		return usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	if err := repo.db.delay(ctx); err != nil {
		return user.User{}, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	metrics.StoreOps.WithLabelValues("get_user_by_username").Inc()

	// exact, case-sensitive match
	for _, usr := range repo.db.users {
		if usr.Username == username {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	if err := repo.db.delay(ctx); err != nil {
		return user.User{}, err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	metrics.StoreOps.WithLabelValues("update_user").Inc()

	// only save set fields
	for i := range repo.db.users {
		if repo.db.users[i].ID != usr.ID {
			continue
		}
		orig := &repo.db.users[i]
		if usr.Name != "" {
			orig.Name = usr.Name
		}
		if usr.Major != "" {
			orig.Major = usr.Major
		}
		if usr.ClassYear != "" {
			orig.ClassYear = usr.ClassYear
		}
		if usr.PasswordHash != nil {
			orig.PasswordHash = usr.PasswordHash
		}
		orig.UpdatedAt = usr.UpdatedAt
		return *orig, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) DeleteUser(ctx context.Context, id string) error {
	if err := repo.db.delay(ctx); err != nil {
		return err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	metrics.StoreOps.WithLabelValues("delete_user").Inc()

	users := repo.db.users[:0]
	var found bool
	for _, usr := range repo.db.users {
		if usr.ID == id {
			found = true
			continue
		}
		users = append(users, usr)
	}
	if !found {
		return user.ErrNotFound
	}
	repo.db.users = users

	// cascade: drop exactly the grades referencing the user as a student
	grades := repo.db.grades[:0]
	for _, g := range repo.db.grades {
		if g.StudentID == id {
			continue
		}
		grades = append(grades, g)
	}
	repo.db.grades = grades
	return nil
}

func isExcluded(usr user.User, excludedUsers []user.User) bool {
	for _, ex := range excludedUsers {
		if ex.ID == usr.ID {
			return true
		}
	}
	return false
}

package dummydb

import "github.com/zawyahq/zawya/core/profile"

type profileRepository struct {
	db *DB
}

var _ profile.Repository = (*profileRepository)(nil)

func NewProfileRepository(db *DB) *profileRepository { //nolint:golint
	return &profileRepository{db: db}
}

func (repo *profileRepository) UpsertProfile(prof profile.Profile) (profile.Profile, error) {
	if err := repo.db.consumeWriteErr(); err != nil {
		return profile.Profile{}, err
	}

	repo.db.profile.Lock()
	defer repo.db.profile.Unlock()

	if existing, ok := repo.db.profile.table[prof.ID]; ok {
		prof.CreatedAt = existing.CreatedAt
	}
	repo.db.profile.table[prof.ID] = &prof
	return prof, nil
}

func (repo *profileRepository) GetProfileByID(id string) (profile.Profile, error) {
	repo.db.profile.RLock()
	defer repo.db.profile.RUnlock()

	if prof, ok := repo.db.profile.table[id]; ok {
		return *prof, nil
	}
	return profile.Profile{}, profile.ErrNotFound
}

func (repo *profileRepository) GetProfileByEmail(email string) (profile.Profile, error) {
	repo.db.profile.RLock()
	defer repo.db.profile.RUnlock()

	for _, prof := range repo.db.profile.table {
		if prof.Email == email {
			return *prof, nil
		}
	}
	return profile.Profile{}, profile.ErrNotFound
}

package dummydb

import (
	"time"

	"github.com/zawyahq/zawya/core/compass"
	"github.com/zawyahq/zawya/core/space"
)

type spaceRepository struct {
	db *DB
}

var (
	_ space.Repository   = (*spaceRepository)(nil)
	_ compass.Repository = (*spaceRepository)(nil)
)

func NewSpaceRepository(db *DB) *spaceRepository { //nolint:golint
	return &spaceRepository{db: db}
}

// copySpace detaches the stored document the way a remote store would:
// callers never share slices with the table.
func copySpace(sp *space.Space) space.Space {
	out := *sp
	out.Team = append([]space.Member(nil), sp.Team...)
	out.MemberIDs = append([]string(nil), sp.MemberIDs...)
	if sp.InviteToken != nil {
		token := *sp.InviteToken
		out.InviteToken = &token
	}
	if sp.Compass != nil {
		c := *sp.Compass
		out.Compass = &c
	}
	return out
}

func (repo *spaceRepository) CreateSpace(sp space.Space) (space.Space, error) {
	if err := repo.db.consumeWriteErr(); err != nil {
		return space.Space{}, err
	}

	repo.db.space.Lock()
	defer repo.db.space.Unlock()

	stored := copySpace(&sp)
	repo.db.space.table[sp.ID] = &stored
	return sp, nil
}

func (repo *spaceRepository) GetSpaceByID(id string) (space.Space, error) {
	repo.db.space.RLock()
	defer repo.db.space.RUnlock()

	if sp, ok := repo.db.space.table[id]; ok {
		return copySpace(sp), nil
	}
	return space.Space{}, space.ErrNotFound
}

func (repo *spaceRepository) GetSpaceByInviteToken(token string) (space.Space, error) {
	repo.db.space.RLock()
	defer repo.db.space.RUnlock()

	for _, sp := range repo.db.space.table {
		if sp.InviteToken != nil && *sp.InviteToken == token {
			return copySpace(sp), nil
		}
	}
	return space.Space{}, space.ErrNotFound
}

func (repo *spaceRepository) QuerySpacesByMember(memberID string) ([]space.Space, error) {
	repo.db.space.RLock()
	defer repo.db.space.RUnlock()

	spaces := make([]space.Space, 0)
	for _, sp := range repo.db.space.table {
		if sp.HasMember(memberID) {
			spaces = append(spaces, copySpace(sp))
		}
	}
	return spaces, nil
}

// RedeemInvite mirrors the production conditional write: the member append
// and the token clear happen under one lock, guarded on the token still
// matching, so a concurrent redeemer can never half-apply.
func (repo *spaceRepository) RedeemInvite(spaceID string, mem space.Member, expectedToken string) error {
	if err := repo.db.consumeWriteErr(); err != nil {
		return err
	}

	repo.db.space.Lock()
	defer repo.db.space.Unlock()

	sp, ok := repo.db.space.table[spaceID]
	if !ok {
		return space.ErrNotFound
	}
	if sp.InviteToken == nil || *sp.InviteToken != expectedToken {
		return space.ErrInvalidToken
	}

	sp.Team = append(sp.Team, mem)
	sp.MemberIDs = append(sp.MemberIDs, mem.ID)
	sp.InviteToken = nil
	sp.UpdatedAt = time.Now().UTC()
	return nil
}

func (repo *spaceRepository) DeleteSpace(id string) error {
	if err := repo.db.consumeWriteErr(); err != nil {
		return err
	}

	repo.db.space.Lock()
	defer repo.db.space.Unlock()
	delete(repo.db.space.table, id)
	return nil
}

// compass.Repository

func (repo *spaceRepository) GetCompass(spaceID string) (*compass.Compass, error) {
	repo.db.space.RLock()
	defer repo.db.space.RUnlock()

	sp, ok := repo.db.space.table[spaceID]
	if !ok {
		return nil, space.ErrNotFound
	}
	if sp.Compass == nil {
		return nil, nil
	}
	c := *sp.Compass
	return &c, nil
}

func (repo *spaceRepository) PutCompass(spaceID string, c compass.Compass) error {
	if err := repo.db.consumeWriteErr(); err != nil {
		return err
	}

	repo.db.space.Lock()
	defer repo.db.space.Unlock()

	sp, ok := repo.db.space.table[spaceID]
	if !ok {
		return space.ErrNotFound
	}
	sp.Compass = &c
	sp.UpdatedAt = time.Now().UTC()
	return nil
}

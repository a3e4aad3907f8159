package store

import (
	"context"
	"fmt"

	"pingup/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EdgeOp adds or removes MemberID in the Kind set of UserID.
type EdgeOp struct {
	Remove   bool
	UserID   string
	Kind     models.RelationKind
	MemberID string
}

func AddEdge(userID string, kind models.RelationKind, memberID string) EdgeOp {
	return EdgeOp{UserID: userID, Kind: kind, MemberID: memberID}
}

func RemoveEdge(userID string, kind models.RelationKind, memberID string) EdgeOp {
	return EdgeOp{Remove: true, UserID: userID, Kind: kind, MemberID: memberID}
}

func (op EdgeOp) String() string {
	verb := "add"
	if op.Remove {
		verb = "remove"
	}
	return fmt.Sprintf("%s %s to %s.%s", verb, op.MemberID, op.UserID, op.Kind)
}

// ApplyEdges applies ops in a single transaction. Adding a present element
// and removing an absent one are both no-ops.
func (s *Store) ApplyEdges(ctx context.Context, ops ...EdgeOp) error {
	if len(ops) == 0 {
		return nil
	}
	db, cancel := s.conn(ctx)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, op := range ops {
			if op.Remove {
				err := tx.Where("user_id = ? AND kind = ? AND member_id = ?", op.UserID, op.Kind, op.MemberID).
					Delete(&models.UserEdge{}).Error
				if err != nil {
					return err
				}
				continue
			}
			edge := models.UserEdge{UserID: op.UserID, Kind: op.Kind, MemberID: op.MemberID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return classify("apply edges", err)
}

// Relations loads all four relationship sets of userID.
func (s *Store) Relations(ctx context.Context, userID string) (models.Relations, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var edges []models.UserEdge
	if err := db.Where("user_id = ?", userID).Find(&edges).Error; err != nil {
		return models.Relations{}, classify("load relations", err)
	}

	rel := models.NewRelations()
	for _, e := range edges {
		if set := rel.Set(e.Kind); set != nil {
			set.Add(e.MemberID)
		}
	}
	return rel, nil
}

func (s *Store) HasEdge(ctx context.Context, userID string, kind models.RelationKind, memberID string) (bool, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var count int64
	err := db.Model(&models.UserEdge{}).
		Where("user_id = ? AND kind = ? AND member_id = ?", userID, kind, memberID).
		Count(&count).Error
	if err != nil {
		return false, classify("check edge", err)
	}
	return count > 0, nil
}

package service

import "context"

// likeStore is the slice of a repository that the like toggle needs. Both the
// post and comment repositories satisfy it.
type likeStore interface {
	IsLiked(ctx context.Context, userID, targetID uint) (bool, error)
	Like(ctx context.Context, userID, targetID uint) (bool, error)
	Unlike(ctx context.Context, userID, targetID uint) (bool, error)
}

// toggleLike flips the like membership for (userID, targetID). It returns the
// resulting liked state plus whether this call actually inserted a row: when
// a concurrent like wins the insert race the state is still liked but
// inserted is false, so the caller skips the notification.
func toggleLike(ctx context.Context, store likeStore, userID, targetID uint) (liked, inserted bool, err error) {
	isLiked, err := store.IsLiked(ctx, userID, targetID)
	if err != nil {
		return false, false, err
	}

	if isLiked {
		if _, err := store.Unlike(ctx, userID, targetID); err != nil {
			return false, false, err
		}
		return false, false, nil
	}

	inserted, err = store.Like(ctx, userID, targetID)
	if err != nil {
		return false, false, err
	}
	return true, inserted, nil
}

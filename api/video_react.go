package api

import (
	"context"
	"net/http"
	"time"

	"vidshare/backend/db"
	"vidshare/backend/model"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// reactionOp says what to do with the stored reaction record.
type reactionOp int

const (
	reactNoop reactionOp = iota
	reactInsert
	reactUpdate
	reactDelete
)

// reactionChange is the outcome of applying a caller's intent to the current
// reaction state: one record mutation plus the counter deltas that go with
// it. Both deltas travel in a single $inc so a flip can never half-apply.
type reactionChange struct {
	op       reactionOp
	newType  string
	likes    int
	dislikes int
}

// reactionTransition computes the state change for a reaction request.
// current is the stored reaction type, "" when there is none. want is
// "like"/"dislike" for the toggle endpoints; remove flags the explicit
// unlike/undislike endpoints, which only ever take a reaction away.
func reactionTransition(current, want string, remove bool) reactionChange {
	if remove {
		if current != want {
			return reactionChange{op: reactNoop}
		}
		if want == model.ReactionLike {
			return reactionChange{op: reactDelete, likes: -1}
		}
		return reactionChange{op: reactDelete, dislikes: -1}
	}

	switch current {
	case "":
		if want == model.ReactionLike {
			return reactionChange{op: reactInsert, newType: want, likes: 1}
		}
		return reactionChange{op: reactInsert, newType: want, dislikes: 1}
	case want:
		// Same reaction again toggles it off
		if want == model.ReactionLike {
			return reactionChange{op: reactDelete, likes: -1}
		}
		return reactionChange{op: reactDelete, dislikes: -1}
	default:
		// Flip: the old counter goes down, the new one up
		if want == model.ReactionLike {
			return reactionChange{op: reactUpdate, newType: want, likes: 1, dislikes: -1}
		}
		return reactionChange{op: reactUpdate, newType: want, likes: -1, dislikes: 1}
	}
}

func (a *API) VideoLike(c *gin.Context)      { a.react(c, model.ReactionLike, false) }
func (a *API) VideoDislike(c *gin.Context)   { a.react(c, model.ReactionDislike, false) }
func (a *API) VideoUnlike(c *gin.Context)    { a.react(c, model.ReactionLike, true) }
func (a *API) VideoUndislike(c *gin.Context) { a.react(c, model.ReactionDislike, true) }

func (a *API) react(c *gin.Context, want string, remove bool) {
	requestID := c.MustGet("requestID").(string)
	ctx := c.Request.Context()

	videoID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Video not found",
			"requestID": requestID,
		})
		return
	}

	var video model.Video
	if err := a.videos().FindOne(ctx, bson.M{"_id": videoID}).Decode(&video); err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Video not found",
			"requestID": requestID,
		})
		return
	}

	filter := a.reactionFilter(c, videoID)

	var existing model.VideoLike
	current := ""
	err = a.videoLikes().FindOne(ctx, filter).Decode(&existing)
	switch {
	case err == nil:
		current = existing.Type
	case err != mongo.ErrNoDocuments:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to process reaction",
			"details":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	change := reactionTransition(current, want, remove)

	if err := a.applyReaction(ctx, c, filter, videoID, change); err != nil {
		if db.IsDuplicateKey(err) {
			// Two concurrent first reactions from the same identity, the
			// unique index turned the loser into a conflict
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":     "Reaction already recorded",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to process reaction",
			"details":   err.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to process reaction", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var updated model.Video
	if err := a.videos().FindOne(ctx, bson.M{"_id": videoID}).Decode(&updated); err != nil {
		updated = video
	}

	if userID, ok := callerID(c); ok && change.op != reactNoop {
		action := model.ActionLike
		if want == model.ReactionDislike {
			action = model.ActionDislike
		}
		a.Activity.Log(userID, model.ActivityTypeLike, action, videoID, model.TargetVideo, nil)
	}

	c.JSON(http.StatusOK, gin.H{
		"likes":    updated.Likes,
		"dislikes": updated.Dislikes,
	})
}

// reactionFilter identifies a caller's reaction record: the user ID when
// signed in, the (device, IP) fingerprint otherwise.
func (a *API) reactionFilter(c *gin.Context, videoID primitive.ObjectID) bson.M {
	if userID, ok := callerID(c); ok {
		return bson.M{"video": videoID, "user": userID}
	}

	deviceID, ip := callerFingerprint(c)
	return bson.M{"video": videoID, "deviceId": deviceID, "ipAddress": ip}
}

func (a *API) applyReaction(ctx context.Context, c *gin.Context, filter bson.M, videoID primitive.ObjectID, change reactionChange) error {
	now := time.Now()

	switch change.op {
	case reactNoop:
		return nil
	case reactInsert:
		deviceID, ip := callerFingerprint(c)
		rec := model.VideoLike{
			Video:     videoID,
			DeviceID:  deviceID,
			IPAddress: ip,
			Type:      change.newType,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if userID, ok := callerID(c); ok {
			rec.User = &userID
		}

		if _, err := a.videoLikes().InsertOne(ctx, &rec); err != nil {
			return err
		}
	case reactUpdate:
		update := bson.M{"$set": bson.M{"type": change.newType, "updatedAt": now}}
		if _, err := a.videoLikes().UpdateOne(ctx, filter, update); err != nil {
			return err
		}
	case reactDelete:
		if _, err := a.videoLikes().DeleteOne(ctx, filter); err != nil {
			return err
		}
	}

	if change.likes == 0 && change.dislikes == 0 {
		return nil
	}

	_, err := a.videos().UpdateByID(ctx, videoID, bson.M{
		"$inc": bson.M{"likes": change.likes, "dislikes": change.dislikes},
	})
	return err
}

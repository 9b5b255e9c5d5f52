package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	authdomain "explorehub-backend/internal/auth/domain"

	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection = "users"
	emailIndex      = "email_1"
	usernameIndex   = "username_1"
)

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Firstname    string             `bson:"firstname"`
	Lastname     string             `bson:"lastname"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	Mobile       string             `bson:"mobile"`
	Country      string             `bson:"country"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d *userDocument) toDomain() *authdomain.User {
	return &authdomain.User{
		ID:           d.ID.Hex(),
		Firstname:    d.Firstname,
		Lastname:     d.Lastname,
		Username:     d.Username,
		Email:        d.Email,
		Mobile:       d.Mobile,
		Country:      d.Country,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

// mongoUserRepository implements UserRepository on a MongoDB collection
type mongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{
		coll: db.Collection(usersCollection),
	}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *authdomain.User) error {
	doc := userDocument{
		ID:           primitive.NewObjectID(),
		Firstname:    user.Firstname,
		Lastname:     user.Lastname,
		Username:     user.Username,
		Email:        user.Email,
		Mobile:       user.Mobile,
		Country:      user.Country,
		PasswordHash: user.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateKeyError(err.Error())
		}
		return oops.In("user_repository").Code("USER_INSERT_FAILED").Wrap(err)
	}

	user.ID = doc.ID.Hex()
	user.CreatedAt = doc.CreatedAt
	return nil
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (*authdomain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, authdomain.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepository) FindByUsername(ctx context.Context, username string) (*authdomain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*authdomain.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, authdomain.ErrNotFound
		}
		return nil, oops.In("user_repository").Code("USER_LOOKUP_FAILED").Wrap(err)
	}
	return doc.toDomain(), nil
}

func (r *mongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName(emailIndex)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName(usernameIndex)},
	})
	if err != nil {
		return oops.In("user_repository").Code("USER_INDEX_FAILED").Wrap(err)
	}
	return nil
}

// duplicateKeyError picks the domain error from the violated index named in
// the driver message. Only the "index: <name>" segment is matched, the dup
// key values may contain anything.
func duplicateKeyError(msg string) error {
	if strings.Contains(msg, "index: "+usernameIndex+" ") {
		return authdomain.ErrDuplicateUsername
	}
	return authdomain.ErrDuplicateEmail
}

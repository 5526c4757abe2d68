package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/newsdesk/newsroom-api/internal/core/domain"
	"github.com/newsdesk/newsroom-api/internal/core/ports"
)

const articlesCollection = "articles"

// searchFields are the text fields keyword search matches against,
// OR-combined and case-insensitive.
var searchFields = []string{"title", "author", "journal_name", "category", "description"}

// filterFields whitelists the fields FindByField and the by-field mutations
// may be scoped by.
var filterFields = map[string]string{
	"title":        "title",
	"author":       "author",
	"journal_name": "journal_name",
	"category":     "category",
}

type ArticleRepository struct {
	coll *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{coll: db.Collection(articlesCollection)}
}

type mongoArticle struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Author      string             `bson:"author"`
	JournalName string             `bson:"journal_name"`
	Category    []string           `bson:"category"`
	Description string             `bson:"description"`
	ImageURL    string             `bson:"image_url,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (ma mongoArticle) toDomain() *domain.Article {
	return &domain.Article{
		ID:          ma.ID.Hex(),
		Title:       ma.Title,
		Author:      ma.Author,
		JournalName: ma.JournalName,
		Category:    ma.Category,
		Description: ma.Description,
		ImageURL:    ma.ImageURL,
		CreatedAt:   ma.CreatedAt.UTC(),
		UpdatedAt:   ma.UpdatedAt.UTC(),
	}
}

// containsPattern builds a case-insensitive substring matcher for value.
func containsPattern(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}

func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	doc := mongoArticle{
		Title:       a.Title,
		Author:      a.Author,
		JournalName: a.JournalName,
		Category:    a.Category,
		Description: a.Description,
		ImageURL:    a.ImageURL,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}

	created := *a
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrArticleNotFound
	}

	var ma mongoArticle
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *ArticleRepository) FindByField(ctx context.Context, field, value string) ([]*domain.Article, error) {
	path, ok := filterFields[field]
	if !ok {
		return nil, domain.ErrValidation
	}

	cursor, err := r.coll.Find(ctx, bson.M{path: containsPattern(value)},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find articles by %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	return decodeArticles(ctx, cursor)
}

func (r *ArticleRepository) List(ctx context.Context, page, limit int) ([]*domain.Article, int64, error) {
	return r.findPage(ctx, bson.M{}, page, limit)
}

func (r *ArticleRepository) Search(ctx context.Context, keywords string, page, limit int) ([]*domain.Article, int64, error) {
	pattern := containsPattern(keywords)
	or := make([]bson.M, 0, len(searchFields))
	for _, f := range searchFields {
		or = append(or, bson.M{f: pattern})
	}
	return r.findPage(ctx, bson.M{"$or": or}, page, limit)
}

func (r *ArticleRepository) findPage(ctx context.Context, filter bson.M, page, limit int) ([]*domain.Article, int64, error) {
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	defer cursor.Close(ctx)

	articles, err := decodeArticles(ctx, cursor)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (r *ArticleRepository) UpdateByID(ctx context.Context, id string, update ports.ArticleUpdate) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrArticleNotFound
	}

	set := updateSet(update)
	if len(set) == 1 { // only updated_at — nothing to change
		return 0, nil
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return 0, fmt.Errorf("update article: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *ArticleRepository) UpdateByField(ctx context.Context, field, value string, update ports.ArticleUpdate) (int64, error) {
	path, ok := filterFields[field]
	if !ok {
		return 0, domain.ErrValidation
	}

	set := updateSet(update)
	if len(set) == 1 {
		return 0, nil
	}

	res, err := r.coll.UpdateMany(ctx, bson.M{path: containsPattern(value)}, bson.M{"$set": set})
	if err != nil {
		return 0, fmt.Errorf("update articles by %s: %w", field, err)
	}
	return res.ModifiedCount, nil
}

func (r *ArticleRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete article: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *ArticleRepository) DeleteByField(ctx context.Context, field, value string) (int64, error) {
	path, ok := filterFields[field]
	if !ok {
		return 0, domain.ErrValidation
	}

	res, err := r.coll.DeleteMany(ctx, bson.M{path: containsPattern(value)})
	if err != nil {
		return 0, fmt.Errorf("delete articles by %s: %w", field, err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the indexes backing the common lookup paths.
func (r *ArticleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "author", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func updateSet(update ports.ArticleUpdate) bson.M {
	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Title != "" {
		set["title"] = update.Title
	}
	if update.JournalName != "" {
		set["journal_name"] = update.JournalName
	}
	if len(update.Category) > 0 {
		set["category"] = update.Category
	}
	if update.Description != "" {
		set["description"] = update.Description
	}
	if update.ImageURL != "" {
		set["image_url"] = update.ImageURL
	}
	return set
}

func decodeArticles(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Article, error) {
	var articles []*domain.Article
	for cursor.Next(ctx) {
		var ma mongoArticle
		if err := cursor.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode article: %w", err)
		}
		articles = append(articles, ma.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}
	return articles, nil
}

// Package mongo provides the MongoDB implementation of the story repository.
// Each story is one document; the image payload is stored inline as binary.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"story-api/internal/domain/entity"
	"story-api/internal/pkg/search"
	"story-api/internal/repository"
)

type imageDoc struct {
	Data        []byte `bson:"data,omitempty"`
	ContentType string `bson:"contentType"`
	Filename    string `bson:"filename"`
	Size        int64  `bson:"size"`
}

type storyDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Title     string        `bson:"title"`
	Writer    string        `bson:"writter"`
	Content   string        `bson:"content"`
	Image     *imageDoc     `bson:"image,omitempty"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func (d *storyDoc) toEntity() *entity.Story {
	st := &entity.Story{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Writer:    d.Writer,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.Image != nil {
		st.Image = &entity.Image{
			ContentType: d.Image.ContentType,
			Filename:    d.Image.Filename,
			Size:        d.Image.Size,
		}
	}
	return st
}

func toImageDoc(img *entity.Image) *imageDoc {
	if img == nil {
		return nil
	}
	return &imageDoc{Data: img.Data, ContentType: img.ContentType, Filename: img.Filename, Size: img.Size}
}

// metadataProjection keeps image bytes out of list and get results.
var metadataProjection = bson.D{{Key: "image.data", Value: 0}}

// Connect opens a client for uri and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// StoryRepo implements repository.StoryRepository on a single collection.
type StoryRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewStoryRepo returns a repository over coll. Call EnsureIndexes once at startup.
func NewStoryRepo(coll *mongo.Collection) *StoryRepo {
	return &StoryRepo{
		coll: coll,
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

var _ repository.StoryRepository = (*StoryRepo)(nil)

// EnsureIndexes creates the unique title index and the sort/search indexes.
func (r *StoryRepo) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}, Options: options.Index().SetName("title_unique").SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}, Options: options.Index().SetName("createdAt_desc")},
		{Keys: bson.D{{Key: "writter", Value: 1}}, Options: options.Index().SetName("writter")},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("%w: %q", entity.ErrInvalidID, id)
	}
	return oid, nil
}

func filterDoc(filter repository.StoryFilter) bson.D {
	if filter.Search == "" {
		return bson.D{}
	}
	re := bson.Regex{Pattern: search.RegexLiteral(filter.Search), Options: "i"}
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "title", Value: re}},
		bson.D{{Key: "writter", Value: re}},
		bson.D{{Key: "content", Value: re}},
	}}}
}

func mapWriteErr(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", op, entity.ErrDuplicateTitle)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *StoryRepo) Create(ctx context.Context, story *entity.Story) error {
	now := r.now()
	doc := storyDoc{
		ID:        bson.NewObjectID(),
		Title:     story.Title,
		Writer:    story.Writer,
		Content:   story.Content,
		Image:     toImageDoc(story.Image),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mapWriteErr("Create", err)
	}
	story.ID = doc.ID.Hex()
	story.CreatedAt = now
	story.UpdatedAt = now
	return nil
}

func (r *StoryRepo) Get(ctx context.Context, id string) (*entity.Story, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc storyDoc
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}},
		options.FindOne().SetProjection(metadataProjection)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *StoryRepo) List(ctx context.Context, filter repository.StoryFilter, offset, limit int) ([]*entity.Story, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetProjection(metadataProjection)

	cur, err := r.coll.Find(ctx, filterDoc(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	stories := make([]*entity.Story, 0, limit)
	for cur.Next(ctx) {
		var doc storyDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		stories = append(stories, doc.toEntity())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return stories, nil
}

func (r *StoryRepo) Count(ctx context.Context, filter repository.StoryFilter) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, filterDoc(filter))
	if err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}

func (r *StoryRepo) ExistsByTitle(ctx context.Context, title, excludeID string) (bool, error) {
	f := bson.D{{Key: "title", Value: title}}
	if oid, err := bson.ObjectIDFromHex(excludeID); err == nil {
		f = append(f, bson.E{Key: "_id", Value: bson.D{{Key: "$ne", Value: oid}}})
	}
	n, err := r.coll.CountDocuments(ctx, f, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("ExistsByTitle: %w", err)
	}
	return n > 0, nil
}

func (r *StoryRepo) Update(ctx context.Context, story *entity.Story, change repository.ImageChange) error {
	oid, err := parseID(story.ID)
	if err != nil {
		return err
	}
	now := r.now()
	set := bson.D{
		{Key: "title", Value: story.Title},
		{Key: "writter", Value: story.Writer},
		{Key: "content", Value: story.Content},
		{Key: "updatedAt", Value: now},
	}
	update := bson.D{}
	switch change.Action {
	case repository.ImageReplace:
		set = append(set, bson.E{Key: "image", Value: toImageDoc(change.Image)})
	case repository.ImageClear:
		update = append(update, bson.E{Key: "$unset", Value: bson.D{{Key: "image", Value: ""}}})
	}
	update = append(update, bson.E{Key: "$set", Value: set})

	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, update)
	if err != nil {
		return mapWriteErr("Update", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	story.UpdatedAt = now
	return nil
}

func (r *StoryRepo) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}

func (r *StoryRepo) GetImage(ctx context.Context, id string) (*entity.Image, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Image *imageDoc `bson:"image"`
	}
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}},
		options.FindOne().SetProjection(bson.D{{Key: "image", Value: 1}})).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("GetImage: %w", entity.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("GetImage: %w", err)
	}
	if doc.Image == nil {
		return nil, nil
	}
	return &entity.Image{
		Data:        doc.Image.Data,
		ContentType: doc.Image.ContentType,
		Filename:    doc.Image.Filename,
		Size:        doc.Image.Size,
	}, nil
}

// statsPipeline computes every statistic in a single $group stage.
var statsPipeline = mongo.Pipeline{
	{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: nil},
		{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
		{Key: "writers", Value: bson.D{{Key: "$addToSet", Value: "$writter"}}},
		{Key: "withImages", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{
			bson.D{{Key: "$ifNull", Value: bson.A{"$image", false}}}, 1, 0,
		}}}}}},
		{Key: "avgLen", Value: bson.D{{Key: "$avg", Value: bson.D{{Key: "$strLenCP", Value: "$content"}}}}},
		{Key: "latest", Value: bson.D{{Key: "$max", Value: "$createdAt"}}},
	}}},
	{{Key: "$project", Value: bson.D{
		{Key: "total", Value: 1},
		{Key: "uniqueWriters", Value: bson.D{{Key: "$size", Value: "$writers"}}},
		{Key: "withImages", Value: 1},
		{Key: "avgLen", Value: 1},
		{Key: "latest", Value: 1},
	}}},
}

func (r *StoryRepo) Stats(ctx context.Context) (*repository.StoryStats, error) {
	cur, err := r.coll.Aggregate(ctx, statsPipeline)
	if err != nil {
		return nil, fmt.Errorf("Stats: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	stats := &repository.StoryStats{}
	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return nil, fmt.Errorf("Stats: %w", err)
		}
		return stats, nil
	}

	var out struct {
		Total         int64      `bson:"total"`
		UniqueWriters int64      `bson:"uniqueWriters"`
		WithImages    int64      `bson:"withImages"`
		AvgLen        float64    `bson:"avgLen"`
		Latest        *time.Time `bson:"latest"`
	}
	if err := cur.Decode(&out); err != nil {
		return nil, fmt.Errorf("Stats: %w", err)
	}
	stats.TotalStories = out.Total
	stats.UniqueWriters = out.UniqueWriters
	stats.StoriesWithImages = out.WithImages
	stats.StoriesWithoutImages = out.Total - out.WithImages
	stats.AvgContentLength = int64(math.Round(out.AvgLen))
	if out.Latest != nil {
		t := out.Latest.UTC()
		stats.LatestStoryAt = &t
	}
	return stats, nil
}

func (r *StoryRepo) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

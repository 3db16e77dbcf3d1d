package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/peoplecore/employee-api/internal/core/domain"
	"github.com/peoplecore/employee-api/internal/core/ports"
)

const collectionEmployees = "employees"

type EmployeeRepository struct {
	col *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{col: db.Collection(collectionEmployees)}
}

// employeeDoc is the persisted form of an employee. Salary is stored as a
// decimal string so no precision is lost in transit.
type employeeDoc struct {
	ID         string     `bson:"_id"`
	Name       string     `bson:"name"`
	Email      string     `bson:"email"`
	Phone      *string    `bson:"phone,omitempty"`
	Department *string    `bson:"department,omitempty"`
	Position   *string    `bson:"position,omitempty"`
	Salary     *string    `bson:"salary,omitempty"`
	HireDate   *time.Time `bson:"hire_date,omitempty"`
	Status     string     `bson:"status"`
	CreatedAt  time.Time  `bson:"created_at"`
	UpdatedAt  time.Time  `bson:"updated_at"`
}

func toDoc(e *domain.Employee) employeeDoc {
	doc := employeeDoc{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		Department: e.Department,
		Position:   e.Position,
		HireDate:   e.HireDate,
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
	if e.Salary != nil {
		s := e.Salary.String()
		doc.Salary = &s
	}
	return doc
}

func fromDoc(doc employeeDoc) (*domain.Employee, error) {
	e := &domain.Employee{
		ID:         doc.ID,
		Name:       doc.Name,
		Email:      doc.Email,
		Phone:      doc.Phone,
		Department: doc.Department,
		Position:   doc.Position,
		Status:     domain.EmployeeStatus(doc.Status),
		CreatedAt:  doc.CreatedAt.UTC(),
		UpdatedAt:  doc.UpdatedAt.UTC(),
	}
	if doc.HireDate != nil {
		hd := doc.HireDate.UTC()
		e.HireDate = &hd
	}
	if doc.Salary != nil {
		d, err := decimal.NewFromString(*doc.Salary)
		if err != nil {
			return nil, fmt.Errorf("decode salary for employee %s: %w", doc.ID, err)
		}
		e.Salary = &d
	}
	return e, nil
}

// Create inserts a new employee document. A duplicate email is reported as
// an EmailConflictError; the unique index makes this the authoritative
// uniqueness check under concurrent creates.
func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, toDoc(e))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &domain.EmailConflictError{Email: e.Email}
		}
		return err
	}
	return nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc employeeDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &domain.NotFoundError{ID: id}
		}
		return nil, err
	}
	return fromDoc(doc)
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc employeeDoc
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return fromDoc(doc)
}

// List returns a page of employees matching filter, ordered by created_at
// descending, and the total count of matching documents.
func (r *EmployeeRepository) List(ctx context.Context, filter ports.ListEmployeesFilter) ([]*domain.Employee, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Name != "" {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Name), Options: "i"}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	employees := make([]*domain.Employee, 0, filter.Limit)
	for cursor.Next(ctx) {
		var doc employeeDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, err
		}
		e, err := fromDoc(doc)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// Update replaces the stored document with the same id.
func (r *EmployeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.ReplaceOne(ctx, bson.M{"_id": e.ID}, toDoc(e))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &domain.EmailConflictError{Email: e.Email}
		}
		return err
	}
	if result.MatchedCount == 0 {
		return &domain.NotFoundError{ID: e.ID}
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return &domain.NotFoundError{ID: id}
	}
	return nil
}

// EnsureIndexes creates the indexes the repository depends on. The unique
// email index is load-bearing: it resolves the check-then-act race between
// concurrent requests carrying the same email.
func (r *EmployeeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

package databases

// go generate: mockery --name DepartmentDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cuportal/student-portal-api/models"
)

const departmentCollectionName = "departments"

// DepartmentDatabase contains the methods to use with the departments catalog
type DepartmentDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Department, error)
	FindOne(ctx context.Context, filter interface{}) (*models.Department, error)
	InsertOne(ctx context.Context, department models.Department, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
}

type departmentDatabase struct {
	db DatabaseHelper
}

// NewDepartmentDatabase initializes a new instance of department database with the provided db connection
func NewDepartmentDatabase(db DatabaseHelper) DepartmentDatabase {
	return &departmentDatabase{
		db: db,
	}
}

func (d *departmentDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Department, error) {
	var departments []models.Department
	if len(opts) == 0 {
		opts = append(opts, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	}
	curr, err := d.db.Collection(departmentCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = curr.Decode(&departments)
	if err != nil {
		return nil, err
	}
	return departments, nil
}

func (d *departmentDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Department, error) {
	department := &models.Department{}
	err := d.db.Collection(departmentCollectionName).FindOne(ctx, filter).Decode(&department)
	if err != nil {
		return nil, err
	}
	return department, nil
}

func (d *departmentDatabase) InsertOne(ctx context.Context, department models.Department, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return d.db.Collection(departmentCollectionName).InsertOne(ctx, department, opts...)
}

package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ingenio-api/internal/models"
)

func newStudentFixture(seed ...models.Student) (*StudentService, *fakeStudentRepo, *fakeEnrollmentRepo, *fakeGuardianRepo) {
	students := newFakeStudentRepo(seed...)
	enrollments := newFakeEnrollmentRepo()
	guardians := newFakeGuardianRepo(students)
	return NewStudentService(students, enrollments, guardians, nil, nil), students, enrollments, guardians
}

func TestStudentServiceCreate(t *testing.T) {
	svc, repo, _, _ := newStudentFixture()

	student, err := svc.Create(context.Background(), StudentRequest{DNI: "70112233", FirstName: "Ana", LastName: "Quispe", Grade: "5to"})
	require.NoError(t, err)
	assert.NotZero(t, student.ID)
	assert.Len(t, repo.students, 1)

	_, err = svc.Create(context.Background(), StudentRequest{DNI: "70112233", FirstName: "Otra", LastName: "Persona"})
	requireStatus(t, err, http.StatusConflict)
	assert.Len(t, repo.students, 1)
}

func TestStudentServiceCreateValidation(t *testing.T) {
	svc, _, _, _ := newStudentFixture()
	_, err := svc.Create(context.Background(), StudentRequest{DNI: "70112233"})
	requireStatus(t, err, http.StatusBadRequest)
}

func TestStudentServiceUpdateKeepsOwnDNI(t *testing.T) {
	svc, _, _, _ := newStudentFixture(
		models.Student{DNI: "70112233", FirstName: "Ana", LastName: "Quispe"},
		models.Student{DNI: "70445566", FirstName: "Luis", LastName: "Mamani"},
	)

	updated, err := svc.Update(context.Background(), 1, StudentRequest{DNI: "70112233", FirstName: "Ana Maria", LastName: "Quispe"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.FirstName)

	_, err = svc.Update(context.Background(), 1, StudentRequest{DNI: "70445566", FirstName: "Ana", LastName: "Quispe"})
	requireStatus(t, err, http.StatusConflict)

	_, err = svc.Update(context.Background(), 99, StudentRequest{DNI: "1", FirstName: "X", LastName: "Y"})
	requireStatus(t, err, http.StatusNotFound)
}

func TestStudentServiceDelete(t *testing.T) {
	svc, repo, _, _ := newStudentFixture(
		models.Student{DNI: "70112233", FirstName: "Ana", LastName: "Quispe"},
		models.Student{DNI: "70445566", FirstName: "Luis", LastName: "Mamani"},
	)
	repo.referenced[2] = true

	require.NoError(t, svc.Delete(context.Background(), 1))
	requireStatus(t, svc.Delete(context.Background(), 1), http.StatusNotFound)
	requireStatus(t, svc.Delete(context.Background(), 2), http.StatusConflict)
	assert.Contains(t, repo.students, int64(2))
}

func TestStudentServiceEnrollmentsAndGuardians(t *testing.T) {
	svc, _, enrollments, _ := newStudentFixture(models.Student{DNI: "70112233", FirstName: "Ana", LastName: "Quispe"})
	enrollments.items[1] = &models.EnrollmentDetail{Enrollment: models.Enrollment{ID: 1, StudentID: 1, CourseID: 1}}
	enrollments.items[2] = &models.EnrollmentDetail{Enrollment: models.Enrollment{ID: 2, StudentID: 7, CourseID: 1}}

	items, err := svc.Enrollments(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), enrollments.lastFilter.StudentID)

	_, err = svc.Enrollments(context.Background(), 42)
	requireStatus(t, err, http.StatusNotFound)

	_, err = svc.Guardians(context.Background(), 42)
	requireStatus(t, err, http.StatusNotFound)
}

func TestStudentServiceGuardians(t *testing.T) {
	svc, _, _, guardians := newStudentFixture(models.Student{DNI: "70112233", FirstName: "Ana", LastName: "Quispe"})
	require.NoError(t, guardians.CreateWithStudent(context.Background(), &models.Guardian{Name: "Rosa"}, 1))

	items, err := svc.Guardians(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Rosa", items[0].Name)
}

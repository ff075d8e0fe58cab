package service

import (
	"context"
	"database/sql"
	"sort"

	"github.com/noah-isme/ingenio-api/internal/models"
	"github.com/noah-isme/ingenio-api/internal/repository"
)

type fakeStudentRepo struct {
	students map[int64]*models.Student
	next     int64
	// referenced marks students an enrollment points at.
	referenced map[int64]bool
}

func newFakeStudentRepo(seed ...models.Student) *fakeStudentRepo {
	r := &fakeStudentRepo{students: map[int64]*models.Student{}, referenced: map[int64]bool{}}
	for _, s := range seed {
		s := s
		r.next++
		s.ID = r.next
		r.students[s.ID] = &s
	}
	return r
}

func (r *fakeStudentRepo) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	out := []models.Student{}
	for _, s := range r.students {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeStudentRepo) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStudentRepo) ExistsByDNI(ctx context.Context, dni string, excludeID int64) (bool, error) {
	for _, s := range r.students {
		if s.DNI == dni && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	r.next++
	student.ID = r.next
	stored := *student
	r.students[student.ID] = &stored
	return nil
}

func (r *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	if _, ok := r.students[student.ID]; !ok {
		return sql.ErrNoRows
	}
	stored := *student
	r.students[student.ID] = &stored
	return nil
}

func (r *fakeStudentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.students[id]; !ok {
		return sql.ErrNoRows
	}
	if r.referenced[id] {
		return repository.ErrReferenced
	}
	delete(r.students, id)
	return nil
}

type fakeCourseRepo struct {
	courses     map[int64]*models.Course
	enrollments map[int64]int
	next        int64
}

func newFakeCourseRepo(seed ...models.Course) *fakeCourseRepo {
	r := &fakeCourseRepo{courses: map[int64]*models.Course{}, enrollments: map[int64]int{}}
	for _, c := range seed {
		c := c
		r.next++
		c.ID = r.next
		r.courses[c.ID] = &c
	}
	return r
}

func (r *fakeCourseRepo) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	out := []models.Course{}
	for _, c := range r.courses {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCourseRepo) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCourseRepo) ExistsByNameLevel(ctx context.Context, name, level string, excludeID int64) (bool, error) {
	for _, c := range r.courses {
		if c.Name == name && c.Level == level && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	r.next++
	course.ID = r.next
	stored := *course
	r.courses[course.ID] = &stored
	return nil
}

func (r *fakeCourseRepo) Update(ctx context.Context, course *models.Course) error {
	if _, ok := r.courses[course.ID]; !ok {
		return sql.ErrNoRows
	}
	stored := *course
	r.courses[course.ID] = &stored
	return nil
}

func (r *fakeCourseRepo) CountEnrollments(ctx context.Context, id int64) (int, error) {
	return r.enrollments[id], nil
}

func (r *fakeCourseRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.courses[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.courses, id)
	return nil
}

type fakeEnrollmentRepo struct {
	items      map[int64]*models.EnrollmentDetail
	next       int64
	lastFilter models.EnrollmentFilter
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{items: map[int64]*models.EnrollmentDetail{}}
}

func (r *fakeEnrollmentRepo) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, error) {
	r.lastFilter = filter
	out := []models.EnrollmentDetail{}
	for _, e := range r.items {
		if filter.StudentID != 0 && e.StudentID != filter.StudentID {
			continue
		}
		if filter.CourseID != 0 && e.CourseID != filter.CourseID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeEnrollmentRepo) FindByID(ctx context.Context, id int64) (*models.EnrollmentDetail, error) {
	e, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *e
	cp.Balance = cp.Amount.Sub(cp.TotalPaid)
	return &cp, nil
}

func (r *fakeEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	r.next++
	enrollment.ID = r.next
	r.items[enrollment.ID] = &models.EnrollmentDetail{Enrollment: *enrollment}
	return nil
}

func (r *fakeEnrollmentRepo) UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus) error {
	e, ok := r.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	e.Status = status
	return nil
}

func (r *fakeEnrollmentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

// fakeGuardianRepo checks student existence through the student fake the
// way the foreign key on alumno_apoderado does.
type fakeGuardianRepo struct {
	students  *fakeStudentRepo
	guardians map[int64]*models.Guardian
	links     map[[2]int64]bool
	next      int64
}

func newFakeGuardianRepo(students *fakeStudentRepo) *fakeGuardianRepo {
	return &fakeGuardianRepo{students: students, guardians: map[int64]*models.Guardian{}, links: map[[2]int64]bool{}}
}

func (r *fakeGuardianRepo) List(ctx context.Context, filter models.GuardianFilter) ([]models.Guardian, error) {
	out := []models.Guardian{}
	for _, g := range r.guardians {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeGuardianRepo) FindByID(ctx context.Context, id int64) (*models.Guardian, error) {
	g, ok := r.guardians[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *g
	return &cp, nil
}

func (r *fakeGuardianRepo) StudentsFor(ctx context.Context, guardianIDs []int64) ([]models.GuardianStudent, error) {
	out := []models.GuardianStudent{}
	for _, gid := range guardianIDs {
		for key := range r.links {
			if key[0] != gid {
				continue
			}
			s := r.students.students[key[1]]
			out = append(out, models.GuardianStudent{
				GuardianID:     gid,
				StudentSummary: models.StudentSummary{ID: s.ID, DNI: s.DNI, FirstName: s.FirstName, LastName: s.LastName},
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeGuardianRepo) CreateWithStudent(ctx context.Context, guardian *models.Guardian, studentID int64) error {
	if _, ok := r.students.students[studentID]; !ok {
		return repository.ErrReferenced
	}
	r.next++
	guardian.ID = r.next
	stored := *guardian
	r.guardians[guardian.ID] = &stored
	r.links[[2]int64{guardian.ID, studentID}] = true
	return nil
}

func (r *fakeGuardianRepo) Update(ctx context.Context, guardian *models.Guardian) error {
	if _, ok := r.guardians[guardian.ID]; !ok {
		return sql.ErrNoRows
	}
	stored := *guardian
	r.guardians[guardian.ID] = &stored
	return nil
}

func (r *fakeGuardianRepo) Link(ctx context.Context, guardianID, studentID int64) error {
	key := [2]int64{guardianID, studentID}
	if r.links[key] {
		return repository.ErrDuplicate
	}
	r.links[key] = true
	return nil
}

func (r *fakeGuardianRepo) Unlink(ctx context.Context, guardianID, studentID int64) error {
	key := [2]int64{guardianID, studentID}
	if !r.links[key] {
		return sql.ErrNoRows
	}
	delete(r.links, key)
	return nil
}

func (r *fakeGuardianRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.guardians[id]; !ok {
		return sql.ErrNoRows
	}
	for key := range r.links {
		if key[0] == id {
			delete(r.links, key)
		}
	}
	delete(r.guardians, id)
	return nil
}

func (r *fakeGuardianRepo) ListByStudent(ctx context.Context, studentID int64) ([]models.Guardian, error) {
	out := []models.Guardian{}
	for key := range r.links {
		if key[1] == studentID {
			out = append(out, *r.guardians[key[0]])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

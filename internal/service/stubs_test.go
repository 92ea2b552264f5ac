package service

import (
	"github.com/formpulse/formpulse/internal/model"
	"github.com/formpulse/formpulse/internal/repository"
	"gorm.io/gorm"
)

// stubFormRepository backs service tests with an in-memory form set.
type stubFormRepository struct {
	forms map[uint]*model.Form

	nextID           uint
	updatedStatus    map[uint]string
	replacedQuestion [][]model.Question // question sets passed to UpdateWithQuestions
}

func newStubFormRepository(forms ...*model.Form) *stubFormRepository {
	repo := &stubFormRepository{
		forms:         make(map[uint]*model.Form),
		nextID:        1,
		updatedStatus: make(map[uint]string),
	}
	for _, f := range forms {
		repo.forms[f.ID] = f
		if f.ID >= repo.nextID {
			repo.nextID = f.ID + 1
		}
	}
	return repo
}

func (r *stubFormRepository) Create(form *model.Form) error {
	form.ID = r.nextID
	r.nextID++
	for i := range form.Questions {
		form.Questions[i].ID = r.nextID
		r.nextID++
	}
	r.forms[form.ID] = form
	return nil
}

func (r *stubFormRepository) FindByID(id uint) (*model.Form, error) {
	form, ok := r.forms[id]
	if !ok {
		return &model.Form{}, gorm.ErrRecordNotFound
	}
	clone := *form
	return &clone, nil
}

func (r *stubFormRepository) FindByIDWithQuestions(id uint) (*model.Form, error) {
	return r.FindByID(id)
}

func (r *stubFormRepository) FindByIDWithResponses(id uint) (*model.Form, error) {
	return r.FindByID(id)
}

func (r *stubFormRepository) FindByPublicURL(publicURL, status string) (*model.Form, error) {
	for _, form := range r.forms {
		if form.PublicURL == publicURL && form.Status == status {
			clone := *form
			return &clone, nil
		}
	}
	return &model.Form{}, gorm.ErrRecordNotFound
}

func (r *stubFormRepository) FindAllByUserWithResponseCount(userID uint) ([]repository.FormWithResponseCount, error) {
	var out []repository.FormWithResponseCount
	for _, form := range r.forms {
		if form.UserID == userID {
			out = append(out, repository.FormWithResponseCount{
				Form:          *form,
				ResponseCount: len(form.Responses),
			})
		}
	}
	return out, nil
}

func (r *stubFormRepository) OwnedBy(formID, userID uint) (bool, error) {
	form, ok := r.forms[formID]
	return ok && form.UserID == userID, nil
}

func (r *stubFormRepository) CountResponses(formID uint) (int64, error) {
	form, ok := r.forms[formID]
	if !ok {
		return 0, nil
	}
	return int64(len(form.Responses)), nil
}

func (r *stubFormRepository) UpdateStatus(formID uint, status string) error {
	r.updatedStatus[formID] = status
	if form, ok := r.forms[formID]; ok {
		form.Status = status
	}
	return nil
}

func (r *stubFormRepository) UpdateWithQuestions(form *model.Form, questions []model.Question) error {
	stored, ok := r.forms[form.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Title = form.Title
	stored.Description = form.Description
	stored.Status = form.Status
	if questions != nil {
		r.replacedQuestion = append(r.replacedQuestion, questions)
		for i := range questions {
			questions[i].ID = r.nextID
			questions[i].FormID = form.ID
			r.nextID++
		}
		stored.Questions = questions
	}
	return nil
}

func (r *stubFormRepository) Delete(id uint) error {
	delete(r.forms, id)
	return nil
}

// stubResponseRepository records created responses.
type stubResponseRepository struct {
	created []*model.Response
	failing bool
	nextID  uint
}

func (r *stubResponseRepository) CreateWithAnswers(response *model.Response) error {
	if r.failing {
		return gorm.ErrInvalidTransaction
	}
	r.nextID++
	response.ID = r.nextID
	r.created = append(r.created, response)
	return nil
}

func (r *stubResponseRepository) CountByFormID(formID uint) (int64, error) {
	var count int64
	for _, resp := range r.created {
		if resp.FormID == formID {
			count++
		}
	}
	return count, nil
}

// stubUserRepository backs auth tests.
type stubUserRepository struct {
	users  map[string]*model.User
	nextID uint
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{users: make(map[string]*model.User)}
}

func (r *stubUserRepository) Create(user *model.User) error {
	r.nextID++
	user.ID = r.nextID
	r.users[user.Email] = user
	return nil
}

func (r *stubUserRepository) FindByEmail(email string) (*model.User, error) {
	user, ok := r.users[email]
	if !ok {
		return &model.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *stubUserRepository) FindByID(id uint) (*model.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return &model.User{}, gorm.ErrRecordNotFound
}

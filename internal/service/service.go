package service

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gitlab.com/dirk.krummacker/contact-console/internal/console"
	"gitlab.com/dirk.krummacker/contact-console/internal/logging"
	"gitlab.com/dirk.krummacker/contact-console/internal/metrics"
	"gitlab.com/dirk.krummacker/contact-console/internal/model"
	pub "gitlab.com/dirk.krummacker/contact-console/pkg/model"
)

// api holds the state behind the REST endpoints.
type api struct {
	console *console.Console
	logger  *zap.Logger
}

// SetupHttpRouter initializes the REST API router and registers all endpoints. If requestLogging
// is false, requests are not logged, but they are still counted in the metrics.
func SetupHttpRouter(c *console.Console, logger *zap.Logger, requestLogging bool) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), metrics.Middleware())
	if requestLogging {
		router.Use(logging.RequestLogger(logger))
	} else {
		logger.Info("Turning off HTTP request logging.")
	}

	a := &api{console: c, logger: logger}
	router.GET("/health", a.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/submissions", a.listSubmissions)
	router.POST("/submissions", a.createSubmission)
	router.GET("/submissions/:id", a.findSubmissionByID)
	router.PUT("/submissions/:id/status", a.setSubmissionStatus)
	router.POST("/submissions/:id/reply", a.replyToSubmission)
	router.POST("/submissions/:id/read", a.markSubmissionRead)
	router.GET("/stats", a.stats)

	router.GET("/selection", a.currentSelection)
	router.PUT("/selection/:id", a.viewSubmission)
	router.DELETE("/selection", a.dismissSelection)

	router.GET("/contact-info", a.liveContactInfo)
	router.POST("/contact-info/edit", a.beginContactInfoEdit)
	router.GET("/contact-info/draft", a.contactInfoDraft)
	router.PUT("/contact-info/draft", a.updateContactInfoDraft)
	router.POST("/contact-info/commit", a.commitContactInfo)
	router.POST("/contact-info/cancel", a.cancelContactInfoEdit)
	return router
}

// health reports that the service is up.
//
//	> curl http://localhost:8080/health
func (a *api) health(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{"status": "healthy"})
}

// listSubmissions responds with all contact submissions in the order they were received.
//
// The optional URL parameter 'status' restricts the result to submissions with that status. Valid
// values are 'new', 'read' and 'replied'. An empty list is not an error.
//
// REST API calls:
//
//	> curl "http://localhost:8080/submissions"
//	> curl "http://localhost:8080/submissions?status=new"
func (a *api) listSubmissions(c *gin.Context) {
	var submissions []model.ContactSubmission
	var err error
	if status, ok := c.GetQuery("status"); ok {
		submissions, err = a.console.Submissions.ListByStatus(c.Request.Context(), model.Status(status))
	} else {
		submissions, err = a.console.Submissions.List(c.Request.Context())
	}
	if err != nil {
		a.abortWithError(c, err)
		return
	}
	result := make([]pub.Submission, 0, len(submissions))
	for _, submission := range submissions {
		result = append(result, toSubmission(submission))
	}
	c.IndentedJSON(http.StatusOK, result)
}

// createSubmission stores the contact form entry in the request's JSON as a new submission. It
// responds with the full submission including the assigned id, timestamp and status.
//
// Example REST API call:
//
//	> curl http://localhost:8080/submissions --request "POST" --include --header "Content-Type: application/json" --data '{"fullName": "Erika Mustermann", "email": "erika@example.org", "subject": "Partnership", "message": "Hello"}'
func (a *api) createSubmission(c *gin.Context) {
	var request pub.SubmitRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON: " + err.Error()})
		return
	}
	submission, err := a.console.Submissions.Submit(c.Request.Context(), console.SubmissionInput{
		FullName:     request.FullName,
		Email:        request.Email,
		Organization: request.Organization,
		Subject:      request.Subject,
		Message:      request.Message,
	})
	if err != nil {
		a.abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, toSubmission(submission))
}

// findSubmissionByID responds with the submission whose id matches the id parameter of the
// request URL. Looking at a submission this way does not change its status.
//
//	> curl http://localhost:8080/submissions/1
func (a *api) findSubmissionByID(c *gin.Context) {
	submission, err := a.console.Submissions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, toSubmission(submission))
}

// setSubmissionStatus replaces the status of a submission. Any status can follow any other.
//
//	> curl http://localhost:8080/submissions/1/status --request "PUT" --header "Content-Type: application/json" --data '{"status": "replied"}'
func (a *api) setSubmissionStatus(c *gin.Context) {
	var request pub.StatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON: " + err.Error()})
		return
	}
	submission, err := a.console.Submissions.SetStatus(c.Request.Context(), c.Param("id"), model.Status(request.Status))
	a.respondWithSubmission(c, submission, err, console.MessageStatusUpdated)
}

// replyToSubmission marks a submission as replied.
//
//	> curl http://localhost:8080/submissions/1/reply --request "POST"
func (a *api) replyToSubmission(c *gin.Context) {
	submission, err := a.console.Submissions.Reply(c.Request.Context(), c.Param("id"))
	a.respondWithSubmission(c, submission, err, console.MessageReplied)
}

// markSubmissionRead marks a submission as read.
//
//	> curl http://localhost:8080/submissions/1/read --request "POST"
func (a *api) markSubmissionRead(c *gin.Context) {
	submission, err := a.console.Submissions.MarkRead(c.Request.Context(), c.Param("id"))
	a.respondWithSubmission(c, submission, err, console.MessageMarkedRead)
}

func (a *api) respondWithSubmission(c *gin.Context, submission model.ContactSubmission, err error, message string) {
	if err != nil {
		a.abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"message": message, "submission": toSubmission(submission)})
}

// stats responds with the number of submissions per status.
//
//	> curl http://localhost:8080/stats
func (a *api) stats(c *gin.Context) {
	stats, err := a.console.Submissions.Stats(c.Request.Context())
	if err != nil {
		a.abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, pub.Stats(stats))
}

// currentSelection responds with the submission shown in detail, if any.
//
//	> curl http://localhost:8080/selection
func (a *api) currentSelection(c *gin.Context) {
	submission, viewing, err := a.console.Selection.Current(c.Request.Context())
	if err != nil {
		a.abortWithError(c, err)
		return
	}
	if !viewing {
		c.IndentedJSON(http.StatusOK, pub.SelectionResponse{State: pub.SelectionIdle})
		return
	}
	selected := toSubmission(submission)
	c.IndentedJSON(http.StatusOK, pub.SelectionResponse{State: pub.SelectionViewing, Submission: &selected})
}

// viewSubmission shows a submission in detail. A new submission becomes read by being viewed.
//
//	> curl http://localhost:8080/selection/1 --request "PUT"
func (a *api) viewSubmission(c *gin.Context) {
	submission, err := a.console.Selection.View(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.abortWithError(c, err)
		return
	}
	selected := toSubmission(submission)
	c.IndentedJSON(http.StatusOK, pub.SelectionResponse{State: pub.SelectionViewing, Submission: &selected})
}

// dismissSelection closes the detail view.
//
//	> curl http://localhost:8080/selection --request "DELETE"
func (a *api) dismissSelection(c *gin.Context) {
	a.console.Selection.Dismiss()
	c.IndentedJSON(http.StatusOK, pub.SelectionResponse{State: pub.SelectionIdle})
}

// liveContactInfo responds with the published contact record. A draft that is being edited is not
// part of the response.
//
//	> curl http://localhost:8080/contact-info
func (a *api) liveContactInfo(c *gin.Context) {
	info := a.console.Info
	c.IndentedJSON(http.StatusOK, pub.ContactInfoResponse{Editing: info.Editing(), ContactInfo: toContactInfo(info.Live())})
}

// beginContactInfoEdit starts an edit and responds with the draft.
//
//	> curl http://localhost:8080/contact-info/edit --request "POST"
func (a *api) beginContactInfoEdit(c *gin.Context) {
	draft := a.console.Info.BeginEdit()
	c.IndentedJSON(http.StatusOK, pub.ContactInfoResponse{Editing: true, ContactInfo: toContactInfo(draft)})
}

// contactInfoDraft responds with the draft of the edit in progress.
//
//	> curl http://localhost:8080/contact-info/draft
func (a *api) contactInfoDraft(c *gin.Context) {
	draft, err := a.console.Info.Draft()
	if err != nil {
		a.abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, pub.ContactInfoResponse{Editing: true, ContactInfo: toContactInfo(draft)})
}

// updateContactInfoDraft replaces the draft with the contact record in the request's JSON. Fields
// missing from the JSON become empty.
//
//	> curl http://localhost:8080/contact-info/draft --request "PUT" --header "Content-Type: application/json" --data '{"phone": "+1 (555) 987-6543"}'
func (a *api) updateContactInfoDraft(c *gin.Context) {
	var request pub.ContactInfo
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON: " + err.Error()})
		return
	}
	draft := fromContactInfo(request)
	if err := a.console.Info.UpdateDraft(draft); err != nil {
		a.abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, pub.ContactInfoResponse{Editing: true, ContactInfo: toContactInfo(draft)})
}

// commitContactInfo publishes the draft. If storing fails the edit stays open.
//
//	> curl http://localhost:8080/contact-info/commit --request "POST"
func (a *api) commitContactInfo(c *gin.Context) {
	live, err := a.console.Info.Commit(c.Request.Context())
	if err != nil {
		a.abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, pub.ContactInfoResponse{
		Editing:     false,
		ContactInfo: toContactInfo(live),
		Message:     console.MessageContactInfoSaved,
	})
}

// cancelContactInfoEdit discards the draft.
//
//	> curl http://localhost:8080/contact-info/cancel --request "POST"
func (a *api) cancelContactInfoEdit(c *gin.Context) {
	a.console.Info.Cancel()
	c.IndentedJSON(http.StatusOK, pub.ContactInfoResponse{Editing: false, ContactInfo: toContactInfo(a.console.Info.Live())})
}

// abortWithError maps errors of the console to HTTP status codes. Unexpected errors are attached
// to the context for the request logger and answered with a generic message.
func (a *api) abortWithError(c *gin.Context, err error) {
	var validationErr *console.ValidationError
	switch {
	case errors.Is(err, console.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "submission not found"})
	case errors.Is(err, console.ErrInvalidStatus), errors.As(err, &validationErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, console.ErrNotEditing):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		_ = c.Error(err)
		a.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

func toSubmission(s model.ContactSubmission) pub.Submission {
	return pub.Submission{
		Id:           s.Id,
		FullName:     s.FullName,
		Email:        s.Email,
		Organization: s.Organization,
		Subject:      s.Subject,
		Message:      s.Message,
		SubmittedAt:  s.SubmittedAt,
		Status:       string(s.Status),
	}
}

func toContactInfo(info model.ContactInfo) pub.ContactInfo {
	return pub.ContactInfo{
		Address:       info.Address,
		Phone:         info.Phone,
		Email:         info.Email,
		BusinessHours: info.BusinessHours,
		Website:       info.Website,
		SocialMedia:   pub.SocialMedia(info.SocialMedia),
	}
}

func fromContactInfo(info pub.ContactInfo) model.ContactInfo {
	return model.ContactInfo{
		Address:       info.Address,
		Phone:         info.Phone,
		Email:         info.Email,
		BusinessHours: info.BusinessHours,
		Website:       info.Website,
		SocialMedia:   model.SocialMedia(info.SocialMedia),
	}
}

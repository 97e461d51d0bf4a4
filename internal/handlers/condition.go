package handlers

import (
	"net/http"

	"canova-go/internal/flow"
	"canova-go/pkg/fault"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ConditionHandler struct {
	service   *flow.Service
	evaluator *flow.Evaluator
	sequencer *flow.Sequencer
	log       *zap.Logger
}

func NewConditionHandler(service *flow.Service, evaluator *flow.Evaluator, sequencer *flow.Sequencer, log *zap.Logger) *ConditionHandler {
	return &ConditionHandler{
		service:   service,
		evaluator: evaluator,
		sequencer: sequencer,
		log:       log,
	}
}

type createConditionRequest struct {
	FormID               string           `json:"formId"`
	PageID               string           `json:"pageId"`
	Rules                []flow.RuleInput `json:"rules"`
	SourcePage           string           `json:"sourcePage"`
	TrueDestinationPage  flow.PageRef     `json:"trueDestinationPage"`
	FalseDestinationPage flow.PageRef     `json:"falseDestinationPage"`
	LogicOperator        string           `json:"logicOperator"`
}

func (h *ConditionHandler) Create(c *gin.Context) {
	var req createConditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.FormID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "formId is required"})
		return
	}
	if req.PageID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pageId is required"})
		return
	}

	cond, err := h.service.CreateCondition(c.Request.Context(), flow.CreateConditionInput{
		FormID:               req.FormID,
		PageID:               req.PageID,
		Rules:                req.Rules,
		SourcePage:           req.SourcePage,
		TrueDestinationPage:  req.TrueDestinationPage.ID,
		FalseDestinationPage: req.FalseDestinationPage.ID,
		LogicOperator:        req.LogicOperator,
	})
	if err != nil {
		h.fail(c, err, "Failed to create condition")
		return
	}
	c.JSON(http.StatusCreated, cond)
}

type evaluateRequest struct {
	FormID  string         `json:"formId"`
	PageID  string         `json:"pageId"`
	Answers *[]flow.Answer `json:"answers"`
}

func (h *ConditionHandler) Evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.FormID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "formId is required"})
		return
	}
	if req.PageID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pageId is required"})
		return
	}
	if req.Answers == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "answers array is required"})
		return
	}

	nextID, err := h.evaluator.NextPage(c.Request.Context(), req.FormID, req.PageID, *req.Answers)
	if err != nil {
		h.fail(c, err, "Failed to evaluate conditions")
		return
	}

	// End of form is a valid terminal state: nextPageId is null, not an error.
	var next *string
	if nextID != "" {
		next = &nextID
	}
	c.JSON(http.StatusOK, gin.H{"nextPageId": next})
}

type pageFlowRequest struct {
	FormID string `json:"formId"`
	PageID string `json:"pageId"`
}

func (h *ConditionHandler) PageFlow(c *gin.Context) {
	var req pageFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.FormID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "formId is required"})
		return
	}
	if req.PageID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pageId is required"})
		return
	}

	preview, err := h.sequencer.Flow(c.Request.Context(), req.FormID, req.PageID)
	if err != nil {
		h.fail(c, err, "Failed to build page flow preview")
		return
	}
	c.JSON(http.StatusOK, preview)
}

// fail maps a fault to its HTTP status. Internal errors are logged with
// their cause but only a generic message reaches the client.
func (h *ConditionHandler) fail(c *gin.Context, err error, logMsg string) {
	status := http.StatusInternalServerError
	switch fault.KindOf(err) {
	case fault.KindClientInput, fault.KindValidation:
		status = http.StatusBadRequest
	case fault.KindNotFound:
		status = http.StatusNotFound
	default:
		h.log.Error(logMsg, zap.Error(err))
	}
	c.JSON(status, gin.H{"error": fault.MessageOf(err)})
}

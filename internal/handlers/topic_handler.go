package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/boardhq/board/internal/middleware"
	"github.com/boardhq/board/internal/models"
	"github.com/boardhq/board/internal/pagination"
	"github.com/boardhq/board/internal/repositories"
)

const (
	topicsPageSize  = 10
	repliesPageSize = 5
)

// TopicEntry is a topic with its author and reply count for listings.
type TopicEntry struct {
	models.Topic
	Author     models.UserCompact `json:"author"`
	ReplyCount int64              `json:"reply_count"`
}

// ReplyEntry is a reply with its author for topic pages.
type ReplyEntry struct {
	models.Reply
	Author models.UserCompact `json:"author"`
}

// TopicHandler handles the discussion forum: topics and replies
type TopicHandler struct {
	topicRepository repositories.TopicRepository
	replyRepository repositories.ReplyRepository
	userRepository  repositories.UserRepository
}

// NewTopicHandler creates a new TopicHandler
func NewTopicHandler(topicRepo repositories.TopicRepository, replyRepo repositories.ReplyRepository, userRepo repositories.UserRepository) *TopicHandler {
	return &TopicHandler{
		topicRepository: topicRepo,
		replyRepository: replyRepo,
		userRepository:  userRepo,
	}
}

// RegisterPublicRoutes registers routes that work for anonymous viewers
func (h *TopicHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/topics", h.ListTopics)
	g.GET("/topics/:id", h.GetTopic)
}

// RegisterTopicRoutes registers routes that require a session
func (h *TopicHandler) RegisterTopicRoutes(g *echo.Group) {
	g.POST("/topics", h.CreateTopic)
	g.POST("/topics/:id/replies", h.CreateReply)
	g.DELETE("/topics/:id", h.DeleteTopic)
}

// ListTopics lists topics newest first with their reply counts
func (h *TopicHandler) ListTopics(c echo.Context) error {
	topics, err := h.topicRepository.GetTopics()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := pagination.Paginate(topics, topicsPageSize, c.QueryParam("page"))

	authors := make(map[uint]models.UserCompact)
	entries := make([]TopicEntry, len(page.Items))
	for i, topic := range page.Items {
		count, err := h.replyRepository.GetRepliesCount(topic.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		entries[i] = TopicEntry{
			Topic:      topic,
			Author:     h.authorCompact(authors, topic.AuthorID),
			ReplyCount: count,
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"topics": entries},
		"meta":    pageMeta(page),
	})
}

// CreateTopic opens a new discussion topic
func (h *TopicHandler) CreateTopic(c echo.Context) error {
	viewerID := middleware.CurrentUserID(c)
	if viewerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req models.CreateTopicRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	topic := &models.Topic{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: viewerID,
	}
	if err := h.topicRepository.CreateTopic(topic); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, topic)
}

// GetTopic returns one topic with its replies, oldest first
func (h *TopicHandler) GetTopic(c echo.Context) error {
	topic, err := h.findTopic(c)
	if err != nil {
		return err
	}

	replies, err := h.replyRepository.GetRepliesByTopicID(topic.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	page := pagination.Paginate(replies, repliesPageSize, c.QueryParam("page"))

	authors := make(map[uint]models.UserCompact)
	entries := make([]ReplyEntry, len(page.Items))
	for i, reply := range page.Items {
		entries[i] = ReplyEntry{
			Reply:  reply,
			Author: h.authorCompact(authors, reply.AuthorID),
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"topic":   topic,
			"author":  h.authorCompact(authors, topic.AuthorID),
			"replies": entries,
		},
		"meta": pageMeta(page),
	})
}

// CreateReply answers a topic
func (h *TopicHandler) CreateReply(c echo.Context) error {
	viewerID := middleware.CurrentUserID(c)
	if viewerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	topic, err := h.findTopic(c)
	if err != nil {
		return err
	}

	var req models.CreateReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reply := &models.Reply{
		TopicID:  topic.ID,
		AuthorID: viewerID,
		Content:  req.Content,
	}
	if err := h.replyRepository.CreateReply(reply); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, reply)
}

// DeleteTopic removes a topic and its replies. Only the owner may delete
// it.
func (h *TopicHandler) DeleteTopic(c echo.Context) error {
	viewerID := middleware.CurrentUserID(c)
	if viewerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	topic, err := h.findTopic(c)
	if err != nil {
		return err
	}

	if topic.AuthorID != viewerID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the owner can delete this topic")
	}

	if err := h.topicRepository.DeleteTopic(topic.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TopicHandler) findTopic(c echo.Context) (*models.Topic, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid topic ID")
	}
	topic, err := h.topicRepository.GetTopicByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Topic not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return topic, nil
}

func (h *TopicHandler) authorCompact(cache map[uint]models.UserCompact, id uint) models.UserCompact {
	author, ok := cache[id]
	if !ok {
		if u, err := h.userRepository.GetUserByID(id); err == nil {
			author = u.ToCompact()
		}
		cache[id] = author
	}
	return author
}

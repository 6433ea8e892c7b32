package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/pathlightlabs/universe-backend/internal/apierr"
  "github.com/pathlightlabs/universe-backend/internal/requestdata"
  "github.com/pathlightlabs/universe-backend/internal/services"
)

type UserHandler struct {
  userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
  return &UserHandler{userService: userService}
}

func (uh *UserHandler) CreateUser(c *gin.Context) {
  var req struct {
    Nickname             string `json:"nickname"`
    Age                  int    `json:"age"`
    Language             string `json:"language"`
    Country              string `json:"country"`
    PreferredInputMethod string `json:"preferredInputMethod"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    respondError(c, apierr.Validation("invalid request body"))
    return
  }

  result, err := uh.userService.CreateUser(c.Request.Context(), &services.CreateUserInput{
    Nickname:             req.Nickname,
    Age:                  req.Age,
    Language:             req.Language,
    Country:              req.Country,
    PreferredInputMethod: req.PreferredInputMethod,
  })
  if err != nil {
    respondError(c, err)
    return
  }

  c.JSON(http.StatusCreated, gin.H{
    "user_id":       result.User.ID,
    "session_token": result.SessionToken,
    "message":       "User created successfully",
  })
}

func (uh *UserHandler) GetMe(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    respondError(c, apierr.Unauthorized("Unauthorized"))
    return
  }

  user, err := uh.userService.GetByID(c.Request.Context(), rd.UserID)
  if err != nil {
    respondError(c, err)
    return
  }

  c.JSON(http.StatusOK, user)
}

package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ecosort-backend/internal/requestdata"
	"github.com/yungbote/ecosort-backend/internal/services"
)

type RewardsHandler struct {
	rewardService services.RewardService
}

func NewRewardsHandler(rewardService services.RewardService) *RewardsHandler {
	return &RewardsHandler{rewardService: rewardService}
}

func (rh *RewardsHandler) GetBalance(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("not authenticated"))
		return
	}
	balance, err := rh.rewardService.GetBalance(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "balance_unavailable", err)
		return
	}
	RespondOK(c, gin.H{"balance": balance})
}

func (rh *RewardsHandler) GetHistory(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("not authenticated"))
		return
	}
	entries, err := rh.rewardService.GetHistory(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "history_unavailable", err)
		return
	}
	RespondOK(c, gin.H{"history": entries})
}

func (rh *RewardsHandler) VerifyBalance(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("not authenticated"))
		return
	}
	check, err := rh.rewardService.VerifyBalance(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "verification_failed", err)
		return
	}
	RespondOK(c, check)
}

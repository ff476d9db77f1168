package auth

import (
	"fmt"
	"symposium-agent-backend/dao"
	"symposium-agent-backend/model"
	"symposium-agent-backend/request"

	"golang.org/x/crypto/bcrypt"
)

func UserRegister(req request.UserRegisterRequest) (*model.User, error) {
	existing, err := dao.GetUserByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("user %s already exists", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &model.User{
		Email:    req.Email,
		Password: string(hash),
		Avatar:   req.Avatar,
	}
	if err := dao.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func UserLogin(req request.UserLoginRequest) (*model.User, error) {
	user, err := dao.GetUserByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", req.Email)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid password")
	}
	return user, nil
}

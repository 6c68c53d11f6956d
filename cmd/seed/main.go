package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storeaudit/internal/config"
	"storeaudit/internal/model"
	"storeaudit/internal/repository"
	"storeaudit/internal/service"
)

func weight(v float64) *float64 { return &v }

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	repo := repository.NewTemplateRepo(client.Database(cfg.MongoDB))

	tpl := &model.Template{
		Name:      "Weekly Store Walk",
		CreatedBy: "seed",
		Sections: []model.Section{
			{
				Title:  "Storefront",
				Weight: weight(1),
				Questions: []model.Question{
					{
						ID:               "open_on_time",
						Text:             "Was the store open at the posted time?",
						Type:             model.QuestionTypeYesNo,
						IsFilterQuestion: true,
						ConditionalTrigger: &model.ConditionalTrigger{
							OnAnswer: "no",
							FollowUpQuestions: []model.FollowUpQuestion{
								{Text: "How well was the late opening handled?", Type: model.QuestionTypeSlider, SliderRange: []float64{1, 5}},
								{Text: "Was a reason posted?", Type: model.QuestionTypeYesNo, Weight: weight(0.5)},
							},
						},
					},
					{ID: "windows_clean", Text: "Are the windows clean?", Type: model.QuestionTypeYesNo},
					{ID: "signage_lit", Text: "Is the exterior signage lit?", Type: model.QuestionTypeYesNo, Weight: weight(0.5)},
				},
			},
			{
				Title:  "Sales Floor",
				Weight: weight(2),
				Questions: []model.Question{
					{ID: "floor_header", Text: "Sales floor", Type: model.QuestionTypeTitle},
					{
						ID:     "shelf_stock",
						Text:   "How well stocked are the shelves?",
						Type:   model.QuestionTypeMultipleChoice,
						Weight: weight(2),
						Options: []model.Option{
							{Text: "Full", Weight: weight(3)},
							{Text: "Some gaps", Weight: weight(1)},
							{Text: "Empty", Weight: weight(0)},
						},
					},
					{ID: "cleanliness", Text: "Overall cleanliness", Type: model.QuestionTypeSlider, SliderRange: []float64{1, 10}},
					{ID: "floor_notes", Text: "Notes", Type: model.QuestionTypeTextInput},
				},
			},
			{
				Title:  "Checkout",
				Weight: weight(1),
				Questions: []model.Question{
					{ID: "queue_short", Text: "Were fewer than five customers waiting?", Type: model.QuestionTypeYesNo},
					{ID: "staff_greeting", Text: "Did the cashier greet customers?", Type: model.QuestionTypeYesNo},
				},
			},
		},
	}

	if err := service.ValidateTemplate(tpl); err != nil {
		log.Fatalf("Seed template is invalid: %v", err)
	}

	id, err := repo.Create(ctx, tpl)
	if err != nil {
		log.Fatalf("Failed to insert template: %v", err)
	}

	fmt.Printf("Successfully created template '%s' with id %s\n", tpl.Name, id)
	fmt.Printf("Follow-up answers use ids like %s_followup_0\n", tpl.Sections[0].Questions[0].ID)
}

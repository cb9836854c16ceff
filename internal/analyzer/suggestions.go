package analyzer

import (
	"strings"

	"github.com/ludo-technologies/pyreview/domain"
)

// suggestionRule maps a keyword found in an issue message to a remediation
type suggestionRule struct {
	Topic      domain.Category
	Keyword    string
	Suggestion string
}

// suggestionTable is scanned in order; the first keyword contained in the
// lowercased message wins.
var suggestionTable = []suggestionRule{
	{domain.CategoryData, "missing", "Add data validation checks using assert or if statements"},
	{domain.CategoryData, "null", "Handle null values using fillna() or dropna()"},
	{domain.CategoryData, "format", "Use data preprocessing techniques like StandardScaler or MinMaxScaler"},
	{domain.CategoryData, "input", "Implement input validation using type hints or validation functions"},

	{domain.CategoryModel, "initialization", "Initialize model with proper architecture and parameters"},
	{domain.CategoryModel, "weights", "Use proper weight initialization techniques like Xavier or He initialization"},
	{domain.CategoryModel, "bias", "Consider adding bias terms to improve model flexibility"},
	{domain.CategoryModel, "prediction", "Add prediction error handling and validation"},

	{domain.CategoryAlgorithm, "training", "Implement early stopping and learning rate scheduling"},
	{domain.CategoryAlgorithm, "gradient", "Use gradient clipping to prevent exploding gradients"},
	{domain.CategoryAlgorithm, "loss", "Consider using a different loss function more suitable for your task"},
	{domain.CategoryAlgorithm, "optimization", "Try different optimizers like Adam or RMSprop"},

	{domain.CategoryHyperparameter, "tuning", "Use grid search or random search for hyperparameter optimization"},
	{domain.CategoryHyperparameter, "optimization", "Implement cross-validation for better parameter selection"},
	{domain.CategoryHyperparameter, "learning_rate", "Try learning rate scheduling or adaptive learning rates"},
	{domain.CategoryHyperparameter, "batch_size", "Experiment with different batch sizes for better performance"},

	{domain.CategoryEvaluation, "metrics", "Add multiple evaluation metrics (accuracy, precision, recall, F1)"},
	{domain.CategoryEvaluation, "validation", "Implement k-fold cross-validation"},
	{domain.CategoryEvaluation, "testing", "Create separate test sets for final evaluation"},
	{domain.CategoryEvaluation, "performance", "Add performance monitoring and logging"},

	{domain.CategoryDeployment, "production", "Add model versioning and deployment pipeline"},
	{domain.CategoryDeployment, "service", "Implement API endpoints with proper error handling"},
	{domain.CategoryDeployment, "monitoring", "Add monitoring and logging for production environment"},
	{domain.CategoryDeployment, "scaling", "Consider using model compression or quantization"},

	{domain.CategorySyntax, "naming", "Follow PEP 8 naming conventions"},
	{domain.CategorySyntax, "indent", "Use 4 spaces for indentation"},
	{domain.CategorySyntax, "import", "Organize imports and remove unused ones"},
	{domain.CategorySyntax, "structure", "Break down complex functions into smaller ones"},
	{domain.CategorySyntax, "global", "Avoid global state; pass values as parameters or encapsulate them in a class"},

	{domain.CategoryRuntime, "memory", "Optimize memory usage with generators or batch processing"},
	{domain.CategoryRuntime, "performance", "Use vectorized operations instead of loops where possible"},
	{domain.CategoryRuntime, "error", "Add proper error handling with try-except blocks"},
	{domain.CategoryRuntime, "infinite", "Add break conditions or maximum iteration limits"},
}

// severitySuggestions is consulted when no keyword matches
var severitySuggestions = map[domain.Severity]string{
	domain.SeverityError:  "Review and fix the error following Python best practices",
	domain.SeverityHigh:   "Consider refactoring this section for better reliability",
	domain.SeverityMedium: "Improve code quality by following ML best practices",
	domain.SeverityLow:    "Optional: Consider enhancing this part of the code",
}

const genericSuggestion = "Review and improve following ML best practices"

// ResolveSuggestion returns the remediation for a message, falling back to
// a severity default and then to a generic one
func ResolveSuggestion(severity domain.Severity, message string) string {
	lower := strings.ToLower(message)
	for _, rule := range suggestionTable {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Suggestion
		}
	}

	if s, ok := severitySuggestions[severity]; ok {
		return s
	}
	return genericSuggestion
}
